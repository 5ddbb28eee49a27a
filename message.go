package compass

import (
	"time"

	"github.com/google/uuid"
)

// Message is one entry in a session transcript. The transcript is strictly
// append-only: insertion order is the transcript order and the only
// meaningful order. Timestamps are client-generated.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// NewMessage creates a Message with a fresh id and timestamp.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}
