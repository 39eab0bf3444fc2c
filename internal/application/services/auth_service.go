package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/clients/tokotitoh"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/session"
)

// AuthService owns the logged-in session: login, registration, logout and
// restoring a persisted session at startup.
type AuthService struct {
	client tokotitoh.Client
	store  *session.Store
	logger zerolog.Logger

	user *entities.User
}

// NewAuthService creates an auth service backed by the given session store
func NewAuthService(client tokotitoh.Client, store *session.Store, logger zerolog.Logger) *AuthService {
	return &AuthService{
		client: client,
		store:  store,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// Restore loads a persisted session, if any, and opportunistically
// refreshes the profile from the backend. When the refresh fails the
// stored copy is kept; a missing session returns (nil, nil).
func (s *AuthService) Restore(ctx context.Context) (*entities.User, error) {
	stored, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}
	s.user = stored

	fresh, err := s.client.User(ctx, stored.ID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", stored.ID).Msg("session refresh failed, keeping stored profile")
		return stored, nil
	}
	if err := s.store.Save(fresh); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist refreshed session")
	}
	s.user = fresh
	return fresh, nil
}

// Login authenticates with a phone number (or other identity) and
// password, fetches the full profile and persists the session.
func (s *AuthService) Login(ctx context.Context, identity, password string) (*entities.User, error) {
	partial, err := s.client.Login(ctx, identity, password)
	if err != nil {
		return nil, err
	}

	user := partial
	if full, err := s.client.User(ctx, partial.ID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", partial.ID).Msg("profile fetch after login failed, using login response")
	} else {
		user = full
	}

	if err := s.store.Save(user); err != nil {
		return nil, err
	}
	s.user = user
	return user, nil
}

// Register creates a new account; the caller logs in afterwards
func (s *AuthService) Register(ctx context.Context, req tokotitoh.RegisterRequest) error {
	return s.client.Register(ctx, req)
}

// Logout clears the persisted session
func (s *AuthService) Logout() error {
	s.user = nil
	return s.store.Clear()
}

// Current returns the in-memory session user, nil when logged out
func (s *AuthService) Current() *entities.User {
	return s.user
}

// SetCurrent replaces the in-memory session user after a profile update
func (s *AuthService) SetCurrent(user *entities.User) {
	s.user = user
}
