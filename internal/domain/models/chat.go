package models

// Turn roles. The assistant only ever stores user and assistant turns;
// the system persona is injected at prompt-build time.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is a single conversation message.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionState is everything the assistant threads between turns:
// the conversation history and the product IDs shown in the most
// recent answer. The assistant never owns this state - it consumes a
// value and returns a new one, and the caller persists it.
type SessionState struct {
	History        []Turn `json:"history"`
	LastProductIDs []int  `json:"last_product_ids"`
}

// Clone returns a deep copy so callers can hand state to the assistant
// without aliasing the stored slices.
func (s SessionState) Clone() SessionState {
	out := SessionState{}
	if len(s.History) > 0 {
		out.History = make([]Turn, len(s.History))
		copy(out.History, s.History)
	}
	if len(s.LastProductIDs) > 0 {
		out.LastProductIDs = make([]int, len(s.LastProductIDs))
		copy(out.LastProductIDs, s.LastProductIDs)
	}
	return out
}
