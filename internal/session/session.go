// Package session holds the authenticated identity for the life of the
// process and persists it across invocations. Exactly two things are
// stored: the bearer token and the user profile.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mascotacare/vetcli/internal/model"
)

// Session is the in-memory identity holder. Safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	user  *model.User
	token string
}

func New() *Session {
	return &Session{}
}

// Set installs the identity after a successful login.
func (s *Session) Set(user *model.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
}

// Clear drops the in-memory identity.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

// User returns the current user, or nil when logged out.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Expired inspects the bearer token's exp claim without verifying the
// signature; verification is the backend's job, this only exists to
// warn before a doomed request. Tokens without an exp claim never
// expire from the client's point of view.
func (s *Session) Expired(now func() int64) bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return true
	}
	if now == nil {
		now = func() int64 { return time.Now().Unix() }
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Opaque tokens are legal; let the backend decide.
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Unix() <= now()
}
