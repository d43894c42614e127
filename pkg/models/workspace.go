package models

import "time"

// ChatRole is a companion-chat transcript role.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the per-day companion transcript.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// WorkspaceState is the per-sleep-day chat workspace: the transcript in
// conversation order plus the suggestion cards from the latest
// assistant turn. Messages are stored verbatim in whatever order the
// caller supplies; cards are replaced wholesale on every merge that
// carries them.
type WorkspaceState struct {
	Date      string        `json:"date"`
	Messages  []ChatMessage `json:"messages"`
	Cards     []Card        `json:"cards"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
