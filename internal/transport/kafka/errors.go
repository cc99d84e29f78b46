package kafka

import (
	"context"
	"errors"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/service/orders"
)

// PermanentError is a permanent error.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent returns a permanent error.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

// SkipInvalid wraps h so that validation failures and forbidden
// operations are permanent: redelivering the event can not fix them.
func SkipInvalid(h HandleFunc) HandleFunc {
	return func(ctx context.Context, ev orders.Event) error {
		err := h(ctx, ev)
		if errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrConflict) || errors.Is(err, apperr.ErrForbidden) {
			return Permanent(err)
		}
		return err
	}
}
