// Package kafka publishes booking lifecycle events through a sarama sync
// producer. Consumers (notification services, analytics) are out of process.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	"github.com/e1zenberg/java-shareit/internal/app/policies"
	domainbooking "github.com/e1zenberg/java-shareit/internal/domain/booking"
)

type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(brokers []string, topic string, cfg *sarama.Config) (*Publisher, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Return.Successes = true
	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Publisher{producer: producer, topic: topic}, nil
}

type bookingEnvelope struct {
	Event    string    `json:"event"`
	ID       string    `json:"id"`
	ItemID   string    `json:"itemId"`
	BookerID string    `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
	At       time.Time `json:"at"`
}

func (p *Publisher) PublishBooking(ctx context.Context, event policies.BookingEvent, b *domainbooking.Booking) error {
	payload, err := json.Marshal(bookingEnvelope{
		Event:    string(event),
		ID:       string(b.ID),
		ItemID:   string(b.ItemID),
		BookerID: string(b.BookerID),
		Start:    b.Start,
		End:      b.End,
		Status:   string(b.Status),
		At:       time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(b.ID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event"), Value: []byte(event)},
		},
	}
	_, _, err = p.producer.SendMessage(msg)
	return err
}

func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

var _ policies.EventPublisher = (*Publisher)(nil)
