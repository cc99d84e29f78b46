package dispatch

import (
	"fmt"
	"math"
	"time"
)

const (
	preparationTime = 10 * time.Minute
	minutesPerKm    = 2 * time.Minute
	bufferTime      = 5 * time.Minute
)

type defaultETAFactory struct{}

// NewETAFactory returns the ETA estimator: preparation, two minutes per
// kilometre of straight-line distance and a fixed buffer.
func NewETAFactory() ETAFactory {
	return defaultETAFactory{}
}

// Estimate returns now + 10m + 2m/km + 5m.
func (defaultETAFactory) Estimate(distanceKm float64, now time.Time) (time.Time, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return time.Time{}, fmt.Errorf("invalid distance: %v", distanceKm)
	}
	travel := time.Duration(distanceKm * float64(minutesPerKm))
	return now.Add(preparationTime + travel + bufferTime), nil
}
