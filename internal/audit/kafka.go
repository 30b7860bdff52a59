package audit

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// KafkaSink publishes events for downstream notification consumers. Messages
// are keyed by provider so one provider's events stay ordered.
type KafkaSink struct {
	w *kafka.Writer
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *KafkaSink) Name() string { return "kafka" }

func (k *KafkaSink) Write(ctx context.Context, ev Event) error {
	msg, err := Encode(ev)
	if err != nil {
		return err
	}
	return k.w.WriteMessages(ctx, msg)
}

func (k *KafkaSink) Close() error {
	return k.w.Close()
}

type wireEvent struct {
	ProviderID uint   `json:"provider_id"`
	Action     string `json:"action"`
	Entity     string `json:"entity"`
	EntityID   string `json:"entity_id"`
	Metadata   any    `json:"metadata,omitempty"`
	At         string `json:"at"`
}

func Encode(ev Event) (kafka.Message, error) {
	b, err := json.Marshal(wireEvent{
		ProviderID: ev.ProviderID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   ev.Metadata,
		At:         ev.At.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.ProviderID), 10)),
		Value: b,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(ev.Action)},
		},
	}, nil
}
