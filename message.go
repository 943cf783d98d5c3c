package propstream

import "github.com/google/uuid"

// Role identifies the sender of a conversation message as labeled by the
// upstream agent service.
type Role string

const (
	// RoleHuman marks a message authored by the end user.
	RoleHuman Role = "human"

	// RoleAssistant marks a message authored by the agent. The upstream
	// wire format labels these "ai".
	RoleAssistant Role = "ai"
)

// Message is a single conversation message inside an agent state record.
// The message list of a record is chronological.
type Message struct {
	// Type is the sender role. The upstream service uses "type", not "role".
	Type    Role   `json:"type"`
	Content string `json:"content"`
	ID      string `json:"id,omitempty"`
}

// IsHuman returns true for end-user messages.
func (m Message) IsHuman() bool {
	return m.Type == RoleHuman
}

// IsAssistant returns true for agent-authored messages.
func (m Message) IsAssistant() bool {
	return m.Type == RoleAssistant
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg_" + uuid.New().String()[:8]
}

// GenerateWidgetID creates a unique widget identifier.
func GenerateWidgetID() string {
	return "widget_" + uuid.New().String()[:8]
}
