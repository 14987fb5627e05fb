package dispatch

import (
	"time"

	"StockChat/internal/model"
)

// Session is the conversation state of one user. It grows monotonically and
// is only mutated by Loop.Turn; it is not safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time
	messages  []model.Message
}

// NewSession starts an empty conversation.
func NewSession(id string) *Session {
	return &Session{ID: id, CreatedAt: time.Now()}
}

func (s *Session) append(m model.Message) {
	s.messages = append(s.messages, m)
}

// History returns a copy of the messages so far.
func (s *Session) History() []model.Message {
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Age returns how long the conversation has existed.
func (s *Session) Age() time.Duration { return time.Since(s.CreatedAt) }

// Len returns the number of messages.
func (s *Session) Len() int { return len(s.messages) }
