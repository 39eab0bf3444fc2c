package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/clients/tokotitoh"
	apperrors "github.com/tokotitoh/marketplace-client/pkg/errors"
)

// ReportForm is the user-filled part of an abuse report
type ReportForm struct {
	Title       string
	Description string
	Type        string
}

// AdService serves the ad detail screen: fetching a single ad and filing
// reports against it.
type AdService struct {
	client tokotitoh.Client
	logger zerolog.Logger
}

// NewAdService creates an ad service
func NewAdService(client tokotitoh.Client, logger zerolog.Logger) *AdService {
	return &AdService{
		client: client,
		logger: logger.With().Str("component", "ad").Logger(),
	}
}

// Get fetches one ad by id
func (s *AdService) Get(ctx context.Context, id int64) (*entities.Ad, error) {
	return s.client.Ad(ctx, id)
}

// SubmitReport validates and files a report against an ad. The stored
// title is prefixed with the report type.
func (s *AdService) SubmitReport(ctx context.Context, form ReportForm, ad *entities.Ad, reporter *entities.User) error {
	if form.Title == "" || form.Description == "" {
		return apperrors.NewValidationError("Harap isi semua bidang")
	}

	report := entities.Report{
		Title:       fmt.Sprintf("%s - %s", form.Type, form.Title),
		Description: form.Description,
		Type:        form.Type,
		AdsID:       ad.ID,
		AdsName:     ad.Title,
	}
	if reporter != nil {
		report.UserID = reporter.ID
		report.UserName = reporter.Name
	} else {
		report.UserName = "Guest"
	}

	return s.client.Report(ctx, report)
}
