package service

import (
	"context"
)

// FoodLogEvent represents a completed food-log request, published for
// downstream consumers (analytics, audit).
type FoodLogEvent struct {
	RequestID  string `json:"request_id,omitempty"` // For distributed tracing
	OwnerID    string `json:"owner_id"`
	ExternalID string `json:"external_id"`
	Entries    int    `json:"entries"`   // Number of food entries logged
	Calories   int    `json:"calories"`  // Total calories across the entries
	LoggedAt   string `json:"logged_at"` // RFC3339 publish timestamp
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishFoodLogEvent publishes a food-log event. Failures are logged by
	// callers, never surfaced to the end user.
	PublishFoodLogEvent(ctx context.Context, event *FoodLogEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
