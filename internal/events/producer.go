package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"
)

// Catalog event types.
const (
	TypeShopCreated     = "shop.created"
	TypeShopDeleted     = "shop.deleted"
	TypeReviewSubmitted = "review.submitted"
)

// CatalogEvent is the payload published on catalog mutations so
// downstream consumers (map tiles, mail digests) can react.
type CatalogEvent struct {
	Type     string    `json:"type"`
	ShopID   int64     `json:"shop_id"`
	ShopName string    `json:"shop_name,omitempty"`
	Rating   float64   `json:"rating,omitempty"`
	At       time.Time `json:"at"`
}

// Producer publishes catalog events to Kafka. Publishing is strictly
// best-effort: failures are logged and swallowed, and a throttle caps
// the outbound rate so a mutation burst cannot back up the catalog.
type Producer struct {
	writer  *kafka.Writer
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewProducer creates a producer for the given brokers and topic.
// Returns nil when no brokers are configured; a nil Producer is safe
// to publish on and does nothing.
func NewProducer(brokers []string, topic string, logger *slog.Logger) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		limiter: rate.NewLimiter(rate.Limit(20), 50), // 20 events/sec, burst 50
		logger:  logger,
	}
}

// Publish sends one event synchronously. Callers on the request path
// should use PublishAsync instead.
func (p *Producer) Publish(ctx context.Context, event CatalogEvent) {
	if p == nil {
		return
	}
	if !p.limiter.Allow() {
		p.logger.Warn("catalog event dropped by throttle", "type", event.Type, "shop_id", event.ShopID)
		return
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	msg, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal catalog event", "type", event.Type, "error", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Type),
		Value: msg,
		Time:  event.At,
	}); err != nil {
		p.logger.Warn("publish catalog event", "type", event.Type, "shop_id", event.ShopID, "error", err)
	}
}

// PublishAsync fires the event from a goroutine with its own timeout so
// the calling operation returns without waiting on the broker.
func (p *Producer) PublishAsync(event CatalogEvent) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p.Publish(ctx, event)
	}()
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
