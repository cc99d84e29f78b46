package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type smsAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender texts drivers through Twilio. Other audiences are skipped.
type SMSSender struct {
	api    smsAPI
	from   string
	phones phoneResolver
}

// NewSMSSender builds a Twilio backed sender.
func NewSMSSender(accountSID, authToken, from string, phones phoneResolver) *SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewSMSSenderWithAPI(client.Api, from, phones)
}

// NewSMSSenderWithAPI builds a sender on top of an existing messages API.
func NewSMSSenderWithAPI(api smsAPI, from string, phones phoneResolver) *SMSSender {
	return &SMSSender{api: api, from: from, phones: phones}
}

// Send implements Sender.
func (s *SMSSender) Send(ctx context.Context, m Message) error {
	if m.Audience != AudienceDriver {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	phone, err := s.phones.Phone(ctx, m.RecipientID)
	if err != nil {
		return fmt.Errorf("notify sms: resolve phone: %w", err)
	}
	if phone == "" {
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(phone)
	params.SetBody(smsBody(m))

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return Temporary(fmt.Errorf("notify sms: %w", err))
	}
	if resp != nil && resp.ErrorCode != nil {
		msg := ""
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return fmt.Errorf("notify sms: twilio error %d: %s", *resp.ErrorCode, msg)
	}
	return nil
}

func smsBody(m Message) string {
	if order, ok := m.Data["orderId"].(string); ok && order != "" {
		return fmt.Sprintf("%s (order %s)", m.Title, order)
	}
	return m.Title
}
