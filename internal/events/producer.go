package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Topics published by the service.
const (
	TopicProductEvents = "product_events"
	TopicOrderEvents   = "order_events"
	TopicCommentEvents = "comment_events"
	TopicBlogEvents    = "blog_events"
	TopicUserEvents    = "user_events"
)

type Producer struct {
	writer *kafka.Writer
}

// NewProducer returns a producer for the given brokers. A nil or empty
// broker list yields a disabled producer whose PublishEvent is a no-op,
// which keeps handlers and tests free of broker wiring.
func NewProducer(brokers []string) *Producer {
	if len(brokers) == 0 {
		return &Producer{}
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
	return &Producer{writer: w}
}

func (p *Producer) Enabled() bool {
	return p != nil && p.writer != nil
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event any) error {
	if !p.Enabled() {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
