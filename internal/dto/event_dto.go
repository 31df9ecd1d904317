package dto

import "time"

// StageCompletedMessage is the wire shape published after a generation
// stage commits.
type StageCompletedMessage struct {
	SessionId  string                 `json:"session_id"`
	UserId     string                 `json:"user_id"`
	Stage      string                 `json:"stage"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}
