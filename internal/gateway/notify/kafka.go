package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

// KafkaSender publishes notifications to a Kafka topic keyed by recipient.
type KafkaSender struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaSender connects a synchronous producer to the brokers.
func NewKafkaSender(brokers []string, topic string) (*KafkaSender, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("notify kafka: new producer: %w", err)
	}
	return NewKafkaSenderWithProducer(producer, topic), nil
}

// NewKafkaSenderWithProducer wraps an existing producer.
func NewKafkaSenderWithProducer(p sarama.SyncProducer, topic string) *KafkaSender {
	return &KafkaSender{producer: p, topic: topic}
}

type kafkaPayload struct {
	Audience    Audience       `json:"audience"`
	RecipientID string         `json:"recipientId"`
	Type        Type           `json:"type"`
	Title       string         `json:"title"`
	Data        map[string]any `json:"data,omitempty"`
	At          time.Time      `json:"at"`
}

// Send implements Sender. Broker errors are temporary.
func (s *KafkaSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(kafkaPayload{
		Audience:    m.Audience,
		RecipientID: m.RecipientID,
		Type:        m.Type,
		Title:       m.Title,
		Data:        m.Data,
		At:          m.At,
	})
	if err != nil {
		return fmt.Errorf("notify kafka: encode: %w", err)
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(string(m.Audience) + ":" + m.RecipientID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return Temporary(fmt.Errorf("notify kafka: send: %w", err))
	}
	return nil
}

// Close closes the producer.
func (s *KafkaSender) Close() error {
	return s.producer.Close()
}
