// Package session owns the authenticated identity and the bearer token.
package session

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/klausmullerDev/vizinhanca-cli/errors"
	"github.com/klausmullerDev/vizinhanca-cli/logging"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/api"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/models"
	"github.com/klausmullerDev/vizinhanca-cli/state"
)

const (
	stateKeyToken    = "token"
	stateKeyUserID   = "user_id"
	stateKeyUserName = "user_name"
)

// Store holds the current session. It is an injected instance rather than a
// package global so tests can build a fresh one per case; it is the single
// owner of the bearer token the gateway reads on every call.
type Store struct {
	mu      sync.RWMutex
	client  *api.Client
	file    *state.File
	logger  *logrus.Entry
	user    *models.User
	token   string
	loading bool
}

// NewStore creates a session store backed by the given state file and wires
// itself into the gateway as token source and unauthorized hook.
func NewStore(client *api.Client, file *state.File) *Store {
	s := &Store{
		client:  client,
		file:    file,
		logger:  logging.NewLogger("session"),
		loading: true,
	}
	client.SetTokenSource(s)
	client.SetUnauthorizedHook(s.expire)
	return s
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Loading reports whether the initial session restore is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ProfileIncomplete reports whether the authenticated user still needs to
// fill the required contact fields. The routing layer uses this to push the
// profile-completion flow.
func (s *Store) ProfileIncomplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && !s.user.ProfileComplete()
}

// Restore attempts to resume a persisted session: load the stored token and
// refetch the profile. An expired token is cleared by the gateway's 401 hook.
func (s *Store) Restore(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, err := s.file.GetString(stateKeyToken)
	if err != nil {
		return err
	}
	if token == "" {
		return errors.NoSession()
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.client.GetProfile(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Login authenticates and persists the resulting session.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.adopt(resp)
	return s.User(), nil
}

// Register creates an account and adopts the returned session.
func (s *Store) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	resp, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	s.adopt(resp)
	return s.User(), nil
}

func (s *Store) adopt(resp *api.AuthResponse) {
	s.mu.Lock()
	user := resp.User
	s.user = &user
	s.token = resp.Token
	s.loading = false
	s.mu.Unlock()

	st, err := s.file.Load()
	if err != nil {
		s.logger.WithError(err).Warn("could not read state file, session will not persist")
		st = make(state.State)
	}
	st[stateKeyToken] = resp.Token
	st[stateKeyUserID] = resp.User.ID
	st[stateKeyUserName] = resp.User.Name
	if err := s.file.Save(st); err != nil {
		s.logger.WithError(err).Warn("could not persist session")
	}
}

// SetUser replaces the cached user after a profile update.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Logout clears the session and the persisted credentials.
func (s *Store) Logout() {
	s.expire()
}

// expire drops the in-memory session and removes persisted credentials.
// Also invoked by the gateway when any protected call gets a 401.
func (s *Store) expire() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	for _, key := range []string{stateKeyToken, stateKeyUserID, stateKeyUserName} {
		if err := s.file.Delete(key); err != nil {
			s.logger.WithError(err).Warn("could not clear persisted session")
			return
		}
	}
}
