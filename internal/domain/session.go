package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is one answered question in a chat session.
type Exchange struct {
	Question string
	Answer   Answer
	AskedAt  time.Time
}

// Session is the display history of one user session. It is a value: Append
// returns a new Session and never modifies the receiver's history.
type Session struct {
	ID      string
	history []Exchange
}

// NewSession starts an empty session with a random ID.
func NewSession() Session {
	return Session{ID: uuid.NewString()}
}

// Len returns the number of exchanges in the session.
func (s Session) Len() int { return len(s.history) }

// History returns a copy of the exchanges in the order they were asked.
func (s Session) History() []Exchange {
	out := make([]Exchange, len(s.history))
	copy(out, s.history)
	return out
}

// Append returns a copy of the session with e added at the end.
func (s Session) Append(e Exchange) Session {
	next := make([]Exchange, len(s.history), len(s.history)+1)
	copy(next, s.history)
	next = append(next, e)
	return Session{ID: s.ID, history: next}
}
