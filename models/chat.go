package models

// Chat roles. The transcript only ever contains these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one entry in a follow-up chat transcript. IsError marks
// assistant turns that carry a failure message instead of an answer.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}
