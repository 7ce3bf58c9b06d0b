// Package events publishes order lifecycle events for downstream consumers.
// Publishing is best-effort: order creation never fails because the event
// could not be delivered.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// OrderCreated is emitted after an order is successfully persisted.
type OrderCreated struct {
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	ItemCount  int       `json:"item_count"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publisher emits order events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
	Close()
}

// NoopPublisher discards all events. Used in tests and when publishing is
// disabled.
type NoopPublisher struct {
	mu        sync.Mutex
	published []OrderCreated
}

// NewNoopPublisher creates a publisher that records but does not deliver.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// PublishOrderCreated records the event.
func (p *NoopPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return nil
}

// Published returns the events recorded so far, for test assertions.
func (p *NoopPublisher) Published() []OrderCreated {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]OrderCreated(nil), p.published...)
}

// Close is a no-op.
func (p *NoopPublisher) Close() {}
