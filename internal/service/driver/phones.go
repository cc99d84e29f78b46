package driver

import (
	"context"

	"github.com/thakshilaCodes/Feedo/internal/apperr"
	"github.com/thakshilaCodes/Feedo/internal/ports/dispatchtx"
)

// PhoneBook resolves driver contact numbers for the SMS channel.
// It reads the store directly so the notification stack does not depend on Service.
type PhoneBook struct {
	drivers dispatchtx.DriverReader
}

// NewPhoneBook creates a PhoneBook.
func NewPhoneBook(r dispatchtx.DriverReader) PhoneBook {
	return PhoneBook{drivers: r}
}

// Phone returns the driver's contact number.
func (p PhoneBook) Phone(ctx context.Context, id string) (string, error) {
	d, err := p.drivers.GetDriver(ctx, id)
	if err != nil {
		return "", err
	}
	if d == nil || d.Phone == "" {
		return "", apperr.ErrNotFound
	}
	return d.Phone, nil
}
