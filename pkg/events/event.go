package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the application.
const (
	TypeUserRegistered        = "USER_REGISTERED"
	TypeUserLogin             = "USER_LOGIN"
	TypeAgentCreated          = "AGENT_CREATED"
	TypeSubscriptionActivated = "SUBSCRIPTION_ACTIVATED"
)

func NewUserRegisteredEvent(userID, email string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userID,
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}

func NewUserLoginEvent(userID, email string) Event {
	return BaseEvent{
		Type: TypeUserLogin,
		Data: map[string]interface{}{
			"user_id": userID,
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}

func NewAgentCreatedEvent(userID, agentID, templateID string) Event {
	return BaseEvent{
		Type: TypeAgentCreated,
		Data: map[string]interface{}{
			"user_id":     userID,
			"agent_id":    agentID,
			"template_id": templateID,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionActivatedEvent(userID, orderID string) Event {
	return BaseEvent{
		Type: TypeSubscriptionActivated,
		Data: map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		},
		OccurredAt: time.Now(),
	}
}
