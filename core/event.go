package core

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates every kind of event flowing over the bus. The set is
// closed; CONTENT_SCHEDULED, ENGAGEMENT_RECEIVED, TREND_DETECTED and
// ANALYTICS_UPDATED are reserved extension points consumed by collaborators
// outside the orchestration core.
type EventType string

const (
	EventContentCreated     EventType = "CONTENT_CREATED"
	EventContentScheduled   EventType = "CONTENT_SCHEDULED"
	EventContentPublished   EventType = "CONTENT_PUBLISHED"
	EventEngagementReceived EventType = "ENGAGEMENT_RECEIVED"
	EventTrendDetected      EventType = "TREND_DETECTED"
	EventStrategyUpdated    EventType = "STRATEGY_UPDATED"
	EventAnalyticsUpdated   EventType = "ANALYTICS_UPDATED"
)

// Priority orders events for consumers that care; the bus itself ignores it.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Metadata carries routing hints alongside an event payload.
type Metadata struct {
	Domain   string   `json:"domain,omitempty"`
	Platform Platform `json:"platform,omitempty"`
	Priority Priority `json:"priority,omitempty"`
}

// Payload is the tagged union of event payloads: exactly one payload struct
// exists per EventType, and EventType() names the variant. Constructing an
// Event through NewEvent derives the event type from its payload, so a
// payload/type mismatch is unrepresentable.
type Payload interface {
	EventType() EventType
}

// ContentCreatedPayload announces freshly generated, validated content bound
// for the platform named in the event metadata.
type ContentCreatedPayload struct {
	Text    string           `json:"text"`
	Content GeneratedContent `json:"content"`
}

// EventType implements Payload.
func (ContentCreatedPayload) EventType() EventType { return EventContentCreated }

// ContentScheduledPayload reserves a future publication slot. Reserved for
// external schedulers.
type ContentScheduledPayload struct {
	Text        string    `json:"text"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// EventType implements Payload.
func (ContentScheduledPayload) EventType() EventType { return EventContentScheduled }

// ContentPublishedPayload records a successful publication.
type ContentPublishedPayload struct {
	Text string     `json:"text"`
	Post PostResult `json:"post"`
}

// EventType implements Payload.
func (ContentPublishedPayload) EventType() EventType { return EventContentPublished }

// EngagementReceivedPayload carries inbound engagement metrics. Reserved for
// analytics collaborators.
type EngagementReceivedPayload struct {
	PostID string `json:"post_id"`
	Kind   string `json:"kind"`
	Count  int    `json:"count"`
}

// EventType implements Payload.
func (EngagementReceivedPayload) EventType() EventType { return EventEngagementReceived }

// TrendDetectedPayload surfaces a trending topic. Reserved for trend
// watchers.
type TrendDetectedPayload struct {
	Topic string  `json:"topic"`
	Score float64 `json:"score"`
}

// EventType implements Payload.
func (TrendDetectedPayload) EventType() EventType { return EventTrendDetected }

// StrategyUpdatedPayload announces a (re)configured content strategy.
type StrategyUpdatedPayload struct {
	Strategy ContentStrategy `json:"strategy"`
}

// EventType implements Payload.
func (StrategyUpdatedPayload) EventType() EventType { return EventStrategyUpdated }

// AnalyticsUpdatedPayload broadcasts refreshed aggregate counters. Reserved
// for analytics collaborators.
type AnalyticsUpdatedPayload struct {
	Analytics Analytics `json:"analytics"`
}

// EventType implements Payload.
func (AnalyticsUpdatedPayload) EventType() EventType { return EventAnalyticsUpdated }

// Event is the unit of communication between the runtime and its
// collaborators. After construction it is treated as immutable; the bus
// never mutates or persists events.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	AgentID   string    `json:"agent_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   Payload   `json:"payload,omitempty"`
	Metadata  Metadata  `json:"metadata"`
}

// NewEvent creates an event for an agent; the event type is derived from the
// payload variant.
func NewEvent(agentID string, payload Payload, meta Metadata) Event {
	return Event{
		ID:        NewID(),
		Type:      payload.EventType(),
		AgentID:   agentID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
		Metadata:  meta,
	}
}

// NewID generates a unique identifier for events, agents and content.
func NewID() string { return uuid.NewString() }
