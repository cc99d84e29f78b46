// Package notify delivers customer, driver and restaurant notifications
// over HTTP, Kafka, SMS and the live tracking channel.
package notify

import (
	"context"
	"errors"
	"time"
)

// Audience is the kind of recipient.
type Audience string

// List of audiences
const (
	AudienceUser       Audience = "user"
	AudienceDriver     Audience = "driver"
	AudienceRestaurant Audience = "restaurant"
)

// Type is the notification type understood by the notification service.
type Type string

// List of notification types
const (
	TypeDeliveryUpdate  Type = "DELIVERY_UPDATE"
	TypeDeliveryRequest Type = "DELIVERY_REQUEST"
)

// Message is a single notification.
type Message struct {
	Audience    Audience
	RecipientID string
	Type        Type
	Title       string
	Data        map[string]any
	At          time.Time
}

// ErrClosed is returned by senders used after Close.
var ErrClosed = errors.New("notify: sender closed")

type temporaryError struct{ err error }

func (e temporaryError) Error() string   { return e.err.Error() }
func (e temporaryError) Unwrap() error   { return e.err }
func (e temporaryError) Temporary() bool { return true }

// Temporary marks err as worth retrying.
func Temporary(err error) error {
	if err == nil {
		return nil
	}
	return temporaryError{err: err}
}

// IsTemporary reports whether err was marked as retryable.
func IsTemporary(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var t interface{ Temporary() bool }
	return errors.As(err, &t) && t.Temporary()
}
