// Package session holds the client's session: the bearer token and cached
// user record in session-scoped storage, and the observable identity that
// the rest of the client treats as the single source of truth for "is a
// user logged in".
//
// A Session is an explicit object passed to whoever needs it (the HTTP
// client, services, the CLI). Start and Invalidate keep storage and the
// identity in step: the identity is non-nil only while a token is stored.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/dmitrijs2005/sgrsensor/internal/common"
	"github.com/dmitrijs2005/sgrsensor/internal/logging"
)

type Session struct {
	storage  Storage
	identity *Identity
	log      logging.Logger
}

// New binds storage and identity. A nil identity gets a fresh one; a nil
// logger discards output.
func New(storage Storage, identity *Identity, log logging.Logger) *Session {
	if identity == nil {
		identity = NewIdentity()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Session{storage: storage, identity: identity, log: log}
}

// Identity returns the observable current user.
func (s *Session) Identity() *Identity {
	return s.identity
}

// User returns the current user, or nil when logged out.
func (s *Session) User() *models.User {
	return s.identity.Get()
}

// Token returns the stored bearer token, or "" when there is none.
func (s *Session) Token(ctx context.Context) (string, error) {
	token, ok, err := s.storage.Get(ctx, common.TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

// Claims returns the unverified claims of the stored token.
func (s *Session) Claims(ctx context.Context) (Claims, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return Claims{}, err
	}
	if token == "" {
		return Claims{}, common.ErrInvalidToken
	}
	return ParseClaims(token)
}

// Start stores token and user and publishes the user.
func (s *Session) Start(ctx context.Context, token string, user *models.User) error {
	if token == "" {
		return fmt.Errorf("start session: %w", common.ErrInvalidToken)
	}
	if user == nil {
		return errors.New("start session: no user")
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.storage.Set(ctx, common.TokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := s.storage.Set(ctx, common.UserKey, string(raw)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}

	s.identity.Set(user)
	s.log.Info(ctx, "session started", "user_id", user.ID)
	return nil
}

// Invalidate removes the token and the cached user and resets the identity.
// Invalidating an already closed session changes nothing and notifies nobody.
// The identity is reset even when storage fails, so the UI never shows a
// user whose session is being torn down.
func (s *Session) Invalidate(ctx context.Context) error {
	err := s.storage.Remove(ctx, common.TokenKey, common.UserKey)
	if s.identity.Reset() {
		s.log.Info(ctx, "session closed")
	}
	if err != nil {
		return fmt.Errorf("remove session keys: %w", err)
	}
	return nil
}

// Restore republishes the cached user when storage still holds a token,
// e.g. after reopening a file-backed session database. A cached user
// without a token is dropped.
func (s *Session) Restore(ctx context.Context) error {
	token, err := s.Token(ctx)
	if err != nil {
		return err
	}
	raw, ok, err := s.storage.Get(ctx, common.UserKey)
	if err != nil {
		return fmt.Errorf("read user: %w", err)
	}

	if token == "" || !ok {
		return s.Invalidate(ctx)
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn(ctx, "cached user record is unreadable, closing session", "error", err)
		return s.Invalidate(ctx)
	}
	s.identity.Set(&user)
	return nil
}
