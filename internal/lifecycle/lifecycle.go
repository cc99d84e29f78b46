package lifecycle

import (
	"fmt"
	"time"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/domain"
)

// transitions lists the allowed targets for every non-terminal status.
var transitions = map[domain.DeliveryStatus][]domain.DeliveryStatus{
	domain.DeliveryPending:        {domain.DeliveryConfirmed, domain.DeliveryCancelled},
	domain.DeliveryConfirmed:      {domain.DeliveryDriverAssigned, domain.DeliveryCancelled},
	domain.DeliveryDriverAssigned: {domain.DeliveryPickedUp, domain.DeliveryCancelled},
	domain.DeliveryPickedUp:       {domain.DeliveryOnTheWay, domain.DeliveryCancelled},
	domain.DeliveryOnTheWay:       {domain.DeliveryDelivered, domain.DeliveryCancelled, domain.DeliveryFailed},
}

// Allowed returns the statuses reachable from the given one.
func Allowed(from domain.DeliveryStatus) []domain.DeliveryStatus {
	next := transitions[from]
	out := make([]domain.DeliveryStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to domain.DeliveryStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Start seeds the history of a fresh delivery.
func Start(d domain.Delivery, status domain.DeliveryStatus, note string, at time.Time) domain.Delivery {
	d = d.Clone()
	d.Status = status
	d.History = []domain.StatusChange{{Status: status, At: at, Note: note}}
	d.UpdatedAt = at
	return d
}

// Transition moves the delivery to the target status and returns the updated copy.
// The input value is left untouched.
func Transition(d domain.Delivery, to domain.DeliveryStatus, note string, at time.Time) (domain.Delivery, error) {
	if !CanTransition(d.Status, to) {
		return d, fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, d.Status, to)
	}

	next := d.Clone()
	next.Status = to
	next.History = append(next.History, domain.StatusChange{Status: to, At: at, Note: note})
	next.UpdatedAt = at
	if to == domain.DeliveryDelivered {
		delivered := at
		next.ActualDeliveryTime = &delivered
	}
	return next, nil
}
