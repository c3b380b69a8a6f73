package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"hotelhub/internal/domain"
)

// ErrProfileUnavailable: credentials were accepted but the profile check failed.
var ErrProfileUnavailable = errors.New("signed in but profile could not be loaded")

// SessionStore holds the authenticated owner. The user is replaced wholesale on
// login, register, logout and refresh; it is never patched field by field
// except through SetUser after a profile edit.
type SessionStore struct {
	api    domain.AuthAPI
	tokens domain.TokenStore

	mu    sync.RWMutex
	user  *domain.UserProfile
	state domain.SessionState

	once  sync.Once
	ready chan struct{}
}

func NewSessionStore(api domain.AuthAPI, tokens domain.TokenStore) *SessionStore {
	return &SessionStore{
		api:    api,
		tokens: tokens,
		state:  domain.SessionAnonymous,
		ready:  make(chan struct{}),
	}
}

// Start runs the startup check: with a stored token the store sits in
// SessionUnknown until the profile fetch resolves. It is safe to call more
// than once; only the first call checks.
func (s *SessionStore) Start(ctx context.Context) {
	s.once.Do(func() {
		defer close(s.ready)
		tok, err := s.tokens.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("token store unreadable; starting anonymous")
		}
		if tok == "" {
			s.set(nil, domain.SessionAnonymous)
			return
		}
		s.set(nil, domain.SessionUnknown)
		s.Refresh(ctx)
	})
}

// Await blocks until the startup check has resolved or ctx is done.
func (s *SessionStore) Await(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Started reports whether the startup check has resolved.
func (s *SessionStore) Started() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

func (s *SessionStore) Login(ctx context.Context, c domain.Credentials) error {
	tr, err := s.api.Login(ctx, c)
	if err != nil {
		log.Info().Str("email", c.Email).Int("status", domain.StatusOf(err)).Msg("login rejected")
		return err
	}
	return s.adopt(ctx, tr.AccessToken)
}

func (s *SessionStore) Register(ctx context.Context, r domain.Registration) error {
	tr, err := s.api.RegisterOwner(ctx, r)
	if err != nil {
		log.Info().Str("email", r.Email).Int("status", domain.StatusOf(err)).Msg("registration rejected")
		return err
	}
	return s.adopt(ctx, tr.AccessToken)
}

func (s *SessionStore) adopt(ctx context.Context, token string) error {
	if token == "" {
		return &domain.APIError{Kind: domain.KindServer, Message: domain.GenericErrorMessage}
	}
	if err := s.tokens.Set(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if !s.Refresh(ctx) {
		return ErrProfileUnavailable
	}
	return nil
}

// Logout clears the stored token and drops to anonymous. No network call.
func (s *SessionStore) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)
	s.set(nil, domain.SessionAnonymous)
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Refresh fetches the profile. Failure silently demotes to anonymous.
func (s *SessionStore) Refresh(ctx context.Context) bool {
	me, err := s.api.Me(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("profile check failed")
		s.set(nil, domain.SessionAnonymous)
		return false
	}
	s.set(&me, domain.SessionAuthenticated)
	return true
}

// UpdateToken swaps the stored token, e.g. after a password change.
func (s *SessionStore) UpdateToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.Set(ctx, token)
}

// SetUser replaces the profile after a successful profile edit.
func (s *SessionStore) SetUser(u domain.UserProfile) {
	s.set(&u, domain.SessionAuthenticated)
}

func (s *SessionStore) set(u *domain.UserProfile, st domain.SessionState) {
	s.mu.Lock()
	s.user = u
	s.state = st
	s.mu.Unlock()
}

// User returns a copy of the current profile, or nil.
func (s *SessionStore) User() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionStore) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated is false while the startup check is pending even if a token exists.
func (s *SessionStore) IsAuthenticated() bool {
	return s.User() != nil
}
