package service

import (
	"context"
	"errors"
	"fmt"

	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"
	"hope4ever-backend/pkg/utils"
)

// DonationService lists donations. Donations are written by the payment
// flow, never by this API.
type DonationService struct {
	campaigns *CampaignService
	users     repository.UserStore
	donations repository.DonationStore
}

func NewDonationService(repos *repository.Repositories, campaigns *CampaignService) *DonationService {
	return &DonationService{
		campaigns: campaigns,
		users:     repos.Users,
		donations: repos.Donations,
	}
}

// ListByCampaign retrieves donations to a campaign, newest first
func (s *DonationService) ListByCampaign(ctx context.Context, rawID string, page utils.Page) ([]dto.DonationSummary, error) {
	campaign, err := s.campaigns.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	donations, err := s.donations.ListByCampaign(ctx, campaign.ID, page.Offset, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return toDonationSummaries(donations), nil
}

// ListByUser retrieves donations made by a user, newest first
func (s *DonationService) ListByUser(ctx context.Context, rawID string, page utils.Page) ([]dto.DonationSummary, error) {
	user, err := s.users.Find(ctx, repository.ParseIdentifier(rawID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	donations, err := s.donations.ListByUser(ctx, user.ID, page.Offset, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return toDonationSummaries(donations), nil
}

func toDonationSummaries(donations []models.Donation) []dto.DonationSummary {
	out := make([]dto.DonationSummary, 0, len(donations))
	for _, d := range donations {
		summary := dto.DonationSummary{
			ID:           d.ID,
			UUID:         d.UUID,
			CampaignID:   d.CampaignID,
			UserID:       d.UserID,
			Amount:       money(d.Amount),
			DonationType: d.DonationType,
			Message:      d.Message,
			IsAnonymous:  d.IsAnonymous,
			Status:       d.Status,
			CreatedAt:    d.CreatedAt,
		}
		if d.IsAnonymous {
			summary.UserID = nil
		}
		out = append(out, summary)
	}
	return out
}
