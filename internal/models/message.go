// ABOUTME: Role-tagged chat messages sent to the generation backend
// ABOUTME: Conversation history is an ordered slice of these
package models

// Role identifies who authored a message
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry of the conversation history
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// UserMessage builds a user-authored message
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// ModelMessage builds a model-authored message
func ModelMessage(text string) Message {
	return Message{Role: RoleModel, Text: text}
}

// CloneMessages returns a copy of history that can be appended to without
// touching the original backing array.
func CloneMessages(history []Message) []Message {
	out := make([]Message, len(history), len(history)+2)
	copy(out, history)
	return out
}
