package events

import "time"

// Source identifies this service in published CloudEvents.
const Source = "service-subscription"

// TopicSubscriptionEvents carries subscription lifecycle notifications.
const TopicSubscriptionEvents = "subscription.events"

// Event types.
const (
	SubscriptionCreated   = "subscription.created"
	SubscriptionCancelled = "subscription.cancelled"
)

// SubscriptionNotificationEvent is the payload of both lifecycle event types.
// Amount is a decimal string with two places.
type SubscriptionNotificationEvent struct {
	SubscriptionID string    `json:"subscription_id"`
	ClientID       string    `json:"client_id"`
	ClientName     string    `json:"client_name"`
	ProductID      int       `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Amount         string    `json:"amount"`
	Channel        string    `json:"channel"`
	Recipient      string    `json:"recipient"`
	Message        string    `json:"message"`
	OccurredAt     time.Time `json:"occurred_at"`
}
