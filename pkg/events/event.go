package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "STAGE_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

// NewStageCompleted builds the event published after a generation
// stage commits its results to the session.
func NewStageCompleted(sessionId, userId, stage string, payload map[string]interface{}) Event {
	data := map[string]interface{}{
		"session_id": sessionId,
		"user_id":    userId,
		"stage":      stage,
	}
	for k, v := range payload {
		data[k] = v
	}
	return BaseEvent{
		Type:       "STAGE_COMPLETED",
		Data:       data,
		OccurredAt: time.Now(),
	}
}
