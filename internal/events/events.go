// Package events publishes slot transitions to interested consumers.
package events

import (
	"context"
	"time"

	"parkly/internal/model"
)

// Event types.
const (
	TypeBooked    = "booked"
	TypeArrived   = "arrived"
	TypeCancelled = "cancelled"
)

// SlotEvent describes a persisted slot transition.
type SlotEvent struct {
	Type       string            `json:"type"`
	SessionID  string            `json:"sessionId"`
	Slot       model.ParkingSlot `json:"slot"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Publisher delivers slot events.
type Publisher interface {
	Publish(ctx context.Context, event SlotEvent) error
	Close() error
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, SlotEvent) error { return nil }
func (NoopPublisher) Close() error                             { return nil }
