package notify

import (
	"context"

	"github.com/thakshilaCodes/Feedo/internal/tracking"
)

// TrackingSender pushes notifications to the recipient's live tracking room.
type TrackingSender struct {
	broker publisher
}

// NewTrackingSender returns a sender publishing on the broker.
func NewTrackingSender(b publisher) *TrackingSender {
	return &TrackingSender{broker: b}
}

// Send implements Sender.
func (s *TrackingSender) Send(ctx context.Context, m Message) error {
	var room string
	switch m.Audience {
	case AudienceDriver:
		room = tracking.DriverRoom(m.RecipientID)
	case AudienceRestaurant:
		room = tracking.RestaurantRoom(m.RecipientID)
	default:
		room = tracking.UserRoom(m.RecipientID)
	}
	typ := tracking.EventDeliveryUpdate
	if m.Type == TypeDeliveryRequest {
		typ = tracking.EventDeliveryRequest
	}
	return s.broker.Publish(ctx, tracking.Event{
		Type:  typ,
		Room:  room,
		Title: m.Title,
		Data:  m.Data,
		At:    m.At,
	})
}
