package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

// DeliveryEvent is the wire form of one outbound delivery. The chat-platform
// shell consumes these and performs the platform send.
type DeliveryEvent struct {
	PartyID  int64     `json:"party_id"`
	Kind     string    `json:"kind"`
	Text     string    `json:"text,omitempty"`
	MediaRef string    `json:"media_ref,omitempty"`
	Caption  string    `json:"caption,omitempty"`
	SentAt   time.Time `json:"sent_at"`
}

// Delivery kinds
const (
	KindText  = "text"
	KindMedia = "media"
)

// KafkaNotifier publishes delivery events to an outbound topic.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

// NewKafkaNotifier creates a Kafka-backed Notifier. Returns nil when the
// outbound topic is not configured; callers fall back to Nop.
func NewKafkaNotifier(brokers []string, topic string) (*KafkaNotifier, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("notify: create producer: %w", err)
	}
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// SendText publishes a text delivery event.
func (n *KafkaNotifier) SendText(ctx context.Context, partyID int64, text string) error {
	return n.publish(ctx, DeliveryEvent{PartyID: partyID, Kind: KindText, Text: text})
}

// SendMedia publishes a media delivery event.
func (n *KafkaNotifier) SendMedia(ctx context.Context, partyID int64, mediaRef, caption string) error {
	return n.publish(ctx, DeliveryEvent{PartyID: partyID, Kind: KindMedia, MediaRef: mediaRef, Caption: caption})
}

func (n *KafkaNotifier) publish(ctx context.Context, ev DeliveryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ev.SentAt = n.now()

	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}

	// keyed by recipient so each party's messages stay in order
	_, _, err = n.producer.SendMessage(&sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ev.PartyID, 10)),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("notify: send to %q: %w", n.topic, err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (n *KafkaNotifier) Close() error {
	if n == nil {
		return nil
	}
	return n.producer.Close()
}

var _ Notifier = (*KafkaNotifier)(nil)
