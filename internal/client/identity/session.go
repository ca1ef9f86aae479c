// Package identity tracks who is signed in to the records client.
package identity

import "sync"

type State string

const (
	StateLoading   State = "loading"
	StateSignedIn  State = "signed-in"
	StateSignedOut State = "signed-out"
)

// Identity is a snapshot of the session. UserID is empty unless signed in.
type Identity struct {
	State  State
	UserID string
}

func (i Identity) SignedIn() bool { return i.State == StateSignedIn && i.UserID != "" }

// Session is a thread-safe identity holder. A fresh session is loading
// until the first SignIn or SignOut.
type Session struct {
	mu  sync.Mutex
	cur Identity
}

func NewSession() *Session {
	return &Session{cur: Identity{State: StateLoading}}
}

func (s *Session) Current() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// SignIn switches to userID and reports whether the identity changed.
// An empty userID signs out.
func (s *Session) SignIn(userID string) bool {
	if userID == "" {
		return s.SignOut()
	}
	return s.set(Identity{State: StateSignedIn, UserID: userID})
}

func (s *Session) SignOut() bool {
	return s.set(Identity{State: StateSignedOut})
}

func (s *Session) set(next Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == next {
		return false
	}
	s.cur = next
	return true
}
