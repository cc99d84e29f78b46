package notify

import (
	"context"
	"time"
)

// Gateway maps the dispatch notifications onto messages for a Sender.
type Gateway struct {
	sender Sender
	now    func() time.Time
}

// NewGateway returns a gateway sending through s.
func NewGateway(s Sender) *Gateway {
	return &Gateway{sender: s, now: func() time.Time { return time.Now().UTC() }}
}

// NotifyUser notifies a customer.
func (g *Gateway) NotifyUser(ctx context.Context, userID, title string, data map[string]any) error {
	return g.send(ctx, AudienceUser, userID, TypeDeliveryUpdate, title, data)
}

// NotifyDriver notifies a driver. Offers of a new delivery carry the
// pickup location and are sent as delivery requests.
func (g *Gateway) NotifyDriver(ctx context.Context, driverID, title string, data map[string]any) error {
	typ := TypeDeliveryUpdate
	if _, offer := data["pickupLocation"]; offer {
		typ = TypeDeliveryRequest
	}
	return g.send(ctx, AudienceDriver, driverID, typ, title, data)
}

// NotifyRestaurant notifies a restaurant.
func (g *Gateway) NotifyRestaurant(ctx context.Context, restaurantID, title string, data map[string]any) error {
	return g.send(ctx, AudienceRestaurant, restaurantID, TypeDeliveryUpdate, title, data)
}

func (g *Gateway) send(ctx context.Context, a Audience, id string, typ Type, title string, data map[string]any) error {
	if g == nil || g.sender == nil || id == "" {
		return nil
	}
	return g.sender.Send(ctx, Message{
		Audience:    a,
		RecipientID: id,
		Type:        typ,
		Title:       title,
		Data:        data,
		At:          g.now(),
	})
}
