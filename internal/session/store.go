// Package session keeps per-browser conversation state. The assistant
// core never touches this package: it consumes and returns state as
// plain values, and the HTTP layer owns persistence here.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"katalog/internal/domain/models"
)

// CookieName identifies the session cookie.
const CookieName = "katalog_session"

// Store is an in-memory session store keyed by opaque UUIDs. Good for
// a single-process deployment; swap for a shared store behind the same
// methods when the app grows a second instance.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]models.SessionState
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]models.SessionState)}
}

// Get returns a deep copy of the session's state. Unknown IDs yield a
// zero state, so a fresh browser just starts a fresh conversation.
func (s *Store) Get(sessionID string) models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID].Clone()
}

// Put replaces the session's state in one step. History and last
// product IDs always travel together - there is no way to update one
// without the other.
func (s *Store) Put(sessionID string, state models.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = state.Clone()
}

// Reset clears history and last product IDs atomically.
func (s *Store) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Middleware guarantees every request carries a session cookie,
// minting one when absent. The session ID is the only thing stored
// client-side.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(CookieName); err != nil {
			cookie := &http.Cookie{
				Name:     CookieName,
				Value:    uuid.NewString(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(30 * 24 * time.Hour),
			}
			http.SetCookie(w, cookie)
			r.AddCookie(cookie)
		}
		next.ServeHTTP(w, r)
	})
}

// IDFromRequest extracts the session ID, empty when no cookie is set.
func IDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
