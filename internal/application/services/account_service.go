package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/clients/tokotitoh"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/session"
	apperrors "github.com/tokotitoh/marketplace-client/pkg/errors"
)

// AccountService handles profile edits, password changes and account
// deletion. All operations surface their errors to the caller; local
// validation failures never reach the network.
type AccountService struct {
	client tokotitoh.Client
	store  *session.Store
	logger zerolog.Logger
}

// NewAccountService creates an account service
func NewAccountService(client tokotitoh.Client, store *session.Store, logger zerolog.Logger) *AccountService {
	return &AccountService{
		client: client,
		store:  store,
		logger: logger.With().Str("component", "account").Logger(),
	}
}

// UpdateProfile patches the profile and refreshes the persisted session
func (s *AccountService) UpdateProfile(ctx context.Context, user *entities.User) error {
	if user.Name == "" {
		return apperrors.NewValidationError("Nama wajib diisi!")
	}

	update := tokotitoh.UserUpdate{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Image: user.Image,
	}
	if err := s.client.UpdateUser(ctx, update); err != nil {
		return err
	}

	if err := s.store.Save(user); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist updated profile")
	}
	return nil
}

// ChangePassword validates locally, then patches the password
func (s *AccountService) ChangePassword(ctx context.Context, userID int64, current, new, confirm string) error {
	if current == "" || new == "" || confirm == "" {
		return apperrors.NewValidationError("Harap isi semua kolom password!")
	}
	if new != confirm {
		return apperrors.NewValidationError("Konfirmasi password tidak cocok!")
	}
	if current == new {
		return apperrors.NewValidationError("Password baru harus berbeda dengan password saat ini!")
	}
	if userID == 0 {
		return apperrors.NewValidationError("Sesi tidak ditemukan. Silakan login kembali.")
	}

	return s.client.UpdateUser(ctx, tokotitoh.UserUpdate{ID: userID, Password: new})
}

// DeleteAccount removes the account and clears the local session
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.client.DeleteUser(ctx, userID); err != nil {
		return err
	}
	if err := s.store.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear session after account deletion")
	}
	return nil
}
