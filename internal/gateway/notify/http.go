package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const notificationsPath = "/api/notifications"

// HTTPSender posts notifications to the notification service.
type HTTPSender struct {
	client *http.Client
	url    string
}

// NewHTTPSender returns a sender for the service at baseURL.
func NewHTTPSender(baseURL string, timeout time.Duration) *HTTPSender {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPSender{
		client: &http.Client{Timeout: timeout},
		url:    strings.TrimRight(baseURL, "/") + notificationsPath,
	}
}

type httpPayload struct {
	UserID       string         `json:"userId,omitempty"`
	RestaurantID string         `json:"restaurantId,omitempty"`
	Type         Type           `json:"type"`
	Title        string         `json:"title"`
	Data         map[string]any `json:"data,omitempty"`
}

func payloadOf(m Message) httpPayload {
	p := httpPayload{Type: m.Type, Title: m.Title, Data: m.Data}
	if m.Audience == AudienceRestaurant {
		p.RestaurantID = m.RecipientID
	} else {
		p.UserID = m.RecipientID
	}
	return p
}

// Send implements Sender. Transport failures, 429 and 5xx answers are temporary.
func (s *HTTPSender) Send(ctx context.Context, m Message) error {
	body, err := json.Marshal(payloadOf(m))
	if err != nil {
		return fmt.Errorf("notify http: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify http: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("notify http: %w", ctx.Err())
		}
		return Temporary(fmt.Errorf("notify http: %w", err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return Temporary(fmt.Errorf("notify http: status %d", resp.StatusCode))
	default:
		return fmt.Errorf("notify http: status %d", resp.StatusCode)
	}
}
