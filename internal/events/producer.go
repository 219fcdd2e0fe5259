package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const TopicContent = "cms.content"

// ArticleEvent is published whenever an article changes, for downstream
// consumers (search indexer rebuilds, cache purgers).
type ArticleEvent struct {
	Action    string    `json:"action"` // created | updated | deleted
	TenantID  string    `json:"tenant_id"`
	ArticleID uint      `json:"article_id"`
	Slug      string    `json:"slug"`
	At        time.Time `json:"at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// Publish keys the message by tenant so one tenant's events stay
// ordered on a single partition.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("kafka: write message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
