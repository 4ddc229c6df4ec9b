package domain

import "time"

type MessageID string

// MaxStoredMessages caps the history kept per user; stores drop the oldest
// entries beyond this.
const MaxStoredMessages = 50

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// ChatMessage is one user/agent exchange entry in a user's history.
type ChatMessage struct {
	ID        MessageID `json:"id"`
	UserID    UserID    `json:"user_id"`
	Author    Role      `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// Snapshot of the emotional state right after this message was processed.
	E    float64 `json:"E"`
	Zone Zone    `json:"zone"`
}
