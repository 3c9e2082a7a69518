package store

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/essience-store/storefront-api/models"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// SessionStore owns the authenticated session. It hydrates once from the KV
// substrate at startup and is mutated only by the auth flow (login/signup)
// and Logout.
type SessionStore struct {
	mu      sync.Mutex
	kv      KV
	notify  Notifier
	session *models.Session
}

func NewSessionStore(kv KV, notify Notifier) *SessionStore {
	s := &SessionStore{kv: kv, notify: notify}
	s.Hydrate()
	return s
}

// Hydrate rebuilds the in-memory session from persisted state. Absent or
// malformed records yield a logged-out session; nothing propagates.
func (s *SessionStore) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.kv.Get(tokenKey)
	if !ok || token == "" {
		s.session = nil
		return
	}

	var user models.User
	if raw, ok := s.kv.Get(userKey); ok {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			log.Printf("⚠️ Discarding corrupt user record: %v", err)
			s.session = nil
			return
		}
	}
	s.session = &models.Session{Token: token, User: user}
}

// Current returns the active session, or nil when logged out.
func (s *SessionStore) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	copy := *s.session
	return &copy
}

// SetSession replaces the session wholesale after a successful login and
// persists it for the next start.
func (s *SessionStore) SetSession(token string, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &models.Session{Token: token, User: user}
	s.kv.Set(tokenKey, token)
	if raw, err := json.Marshal(user); err == nil {
		s.kv.Set(userKey, string(raw))
	}
}

// Logout clears the persisted credentials and resets to logged out.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.session = nil
	s.kv.Remove(tokenKey)
	s.kv.Remove(userKey)
	s.mu.Unlock()

	if s.notify != nil {
		s.notify.Show("You have been logged out.", models.ToastInfo)
	}
}
