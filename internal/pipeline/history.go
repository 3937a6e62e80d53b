package pipeline

import (
	"sync"

	"concierge/internal/domain"
)

// History is the append-only conversation log shared by every request.
// Appends happen pairwise under one lock so concurrent requests never
// interleave a user turn with another request's assistant turn.
type History struct {
	mu    sync.Mutex
	turns []domain.Turn
}

// NewHistory creates an empty history.
func NewHistory() *History { return &History{} }

// AppendExchange records a completed request as a (user, assistant) pair.
func (h *History) AppendExchange(query, answer string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns,
		domain.Turn{Role: domain.RoleUser, Text: query},
		domain.Turn{Role: domain.RoleAssistant, Text: answer},
	)
}

// Snapshot returns a copy of the turns recorded so far.
func (h *History) Snapshot() []domain.Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.Turn(nil), h.turns...)
}

// Len returns the number of recorded turns.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}
