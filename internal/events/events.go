package events

import (
	"context"
	"time"
)

const (
	OrderCreated       = "order.created"
	OrderStatusUpdated = "order.status_updated"
	OrderPaid          = "order.paid"
)

// Event is the JSON body published for every order lifecycle change.
type Event struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      string    `json:"userId"`
	Status      string    `json:"status"`
	TotalPrice  float64   `json:"totalPrice"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
