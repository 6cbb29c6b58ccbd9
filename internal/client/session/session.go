package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/travelrisk/internal/client/api"
	"github.com/dmitrijs2005/travelrisk/internal/logging"
)

// Authenticator is the slice of the backend the session talks to.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (api.AuthResponse, error)
}

// Store is the durable home of the token.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Session holds {token, user}. The zero token "" means logged out.
// It is safe for concurrent use.
type Session struct {
	store  Store
	auth   Authenticator
	logger logging.Logger

	mu    sync.RWMutex
	token string
	user  *User

	lmu       sync.Mutex
	nextID    int
	listeners map[int]func(token string)
}

// New loads the persisted token and derives the user from it.
func New(ctx context.Context, store Store, auth Authenticator, logger logging.Logger) (*Session, error) {
	s := &Session{
		store:     store,
		auth:      auth,
		logger:    logger.With("component", "session"),
		listeners: make(map[int]func(string)),
	}

	token, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.token = token
	s.user = s.derive(ctx, token)
	return s, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the derived user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// OnTokenChange registers fn to run after every token change. fn runs on
// the goroutine that changed the token, outside the session's locks.
func (s *Session) OnTokenChange(fn func(token string)) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()

	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

// Login authenticates against the backend. A rejected attempt returns
// *AuthenticationError and leaves the session untouched.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.logger.Info(ctx, "logging in", "email", email)

	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return authError(err, "Login failed")
	}
	if resp.Token == "" {
		s.logger.Warn(ctx, "login response carried no token")
		return nil
	}
	return s.adopt(ctx, resp.Token)
}

// Register creates an account and, when the reply carries a token, adopts
// it exactly as Login does. The raw reply is returned to the caller.
func (s *Session) Register(ctx context.Context, name, email, password string) (api.AuthResponse, error) {
	resp, err := s.auth.Register(ctx, name, email, password)
	if err != nil {
		return api.AuthResponse{}, authError(err, "Registration failed")
	}
	if resp.Token != "" {
		if err := s.adopt(ctx, resp.Token); err != nil {
			return api.AuthResponse{}, err
		}
	}
	return resp, nil
}

// Logout forgets the token locally. It makes no network call and never
// fails: a storage error is logged and the in-memory state is cleared anyway.
func (s *Session) Logout(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn(ctx, "failed to clear stored token", "error", err)
	}
	s.set(ctx, "", nil)
}

// adopt persists token first, then updates memory.
func (s *Session) adopt(ctx context.Context, token string) error {
	if err := s.store.Save(ctx, token); err != nil {
		return err
	}
	s.set(ctx, token, s.derive(ctx, token))
	return nil
}

func (s *Session) set(ctx context.Context, token string, user *User) {
	s.mu.Lock()
	changed := s.token != token
	s.token = token
	s.user = user
	s.mu.Unlock()

	if !changed {
		return
	}
	s.logger.Debug(ctx, "token changed", "authenticated", token != "")

	s.lmu.Lock()
	fns := make([]func(string), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(token)
	}
}

func (s *Session) derive(ctx context.Context, token string) *User {
	if token == "" {
		return nil
	}
	u, err := DecodeUser(token)
	if err != nil {
		s.logger.Warn(ctx, "cannot derive user from token", "error", err)
		return nil
	}
	return u
}

// authError turns a backend rejection into *AuthenticationError. Transport
// and decoding failures pass through unchanged.
func authError(err error, fallback string) error {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	msg := fallback
	if m, ok := api.MessageOf(err); ok {
		msg = m
	}
	return &AuthenticationError{Message: msg, Err: err}
}
