package apiclient

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Session holds the credentials a client attaches to every request.
type Session interface {
	Token() string
	SetToken(token string)
	// ClearToken forgets the token and the session id.
	ClearToken()
	// SessionID returns the advisory session id, creating one if needed.
	SessionID() string
}

// MemorySession keeps credentials in process memory.
type MemorySession struct {
	mu        sync.Mutex
	token     string
	sessionID string
	now       func() time.Time
}

func NewMemorySession() *MemorySession {
	return &MemorySession{now: time.Now}
}

func (s *MemorySession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemorySession) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemorySession) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.sessionID = ""
}

func (s *MemorySession) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionID == "" {
		s.sessionID = NewSessionID(s.now())
	}
	return s.sessionID
}

// NewSessionID formats ids as session_<unix millis>_<random below one million>.
func NewSessionID(now time.Time) string {
	return fmt.Sprintf("session_%d_%d", now.UnixMilli(), rand.Intn(1000000))
}
