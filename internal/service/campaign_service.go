package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"
	"hope4ever-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SearchPageSize bounds a full-text search result.
const SearchPageSize = 50

var campaignStatuses = map[string]bool{
	models.CampaignDraft:         true,
	models.CampaignPendingReview: true,
	models.CampaignPublished:     true,
	models.CampaignPaused:        true,
	models.CampaignFunded:        true,
	models.CampaignRejected:      true,
}

type CampaignService struct {
	campaigns repository.CampaignStore
	hospitals repository.HospitalStore
	audit     repository.AuditStore
	events    EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewCampaignService(repos *repository.Repositories, events EventPublisher, logger *zap.Logger) *CampaignService {
	return &CampaignService{
		campaigns: repos.Campaigns,
		hospitals: repos.Hospitals,
		audit:     repos.Audit,
		events:    events,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List routes a listing request: a free-text query goes to the store's
// full-text search, anything else to the status-filtered listing. Both
// paths return the same projection.
func (s *CampaignService) List(ctx context.Context, query dto.CampaignQuery, page utils.Page) ([]dto.CampaignSummary, error) {
	var (
		campaigns []models.Campaign
		err       error
	)
	if q := strings.TrimSpace(query.Q); q != "" {
		campaigns, err = s.campaigns.Search(ctx, q, SearchPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to search campaigns: %w", err)
		}
	} else {
		if query.Status != "" && !campaignStatuses[query.Status] {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, query.Status)
		}
		campaigns, err = s.campaigns.List(ctx, query.Status, page.Offset, page.Limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list campaigns: %w", err)
		}
	}

	out := make([]dto.CampaignSummary, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, toCampaignSummary(&campaigns[i]))
	}
	return out, nil
}

// Get retrieves a campaign by numeric id, external id or slug
func (s *CampaignService) Get(ctx context.Context, rawID string) (*dto.CampaignDetail, error) {
	campaign, err := s.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	detail := toCampaignDetail(campaign)
	return &detail, nil
}

// Create creates a draft campaign owned by actor
func (s *CampaignService) Create(ctx context.Context, actor *models.User, req dto.CampaignCreateRequest) (*dto.CampaignDetail, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be blank", ErrValidation)
	}

	// 1. Validate hospital reference
	if req.HospitalID != nil {
		if err := s.checkHospital(ctx, *req.HospitalID); err != nil {
			return nil, err
		}
	}

	// 2. Build the campaign
	campaign := &models.Campaign{
		UUID:             uuid.NewString(),
		Title:            title,
		ShortDescription: trimmed(req.ShortDescription),
		FullDescription:  trimmed(req.FullDescription),
		HospitalID:       req.HospitalID,
		City:             trimmed(req.City),
		District:         trimmed(req.District),
		Category:         trimmed(req.Category),
		Urgency:          models.UrgencyMedium,
		CostEstimate:     decimal.Zero,
		TargetAmount:     decimal.Zero,
		AmountRaised:     decimal.Zero,
		Status:           models.CampaignDraft,
		CreatedBy:        &actor.ID,
	}
	if req.Urgency != nil {
		campaign.Urgency = *req.Urgency
	}
	if req.CostEstimate != nil {
		campaign.CostEstimate = req.CostEstimate.Round(2)
	}
	if req.TargetAmount != nil {
		campaign.TargetAmount = req.TargetAmount.Round(2)
	}

	// 3. Persist; the slug is derived inside the store transaction
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	details := fmt.Sprintf("Created campaign: %s (slug: %s)", campaign.Title, campaign.Slug)
	_ = s.audit.CreateAuditLog(ctx, &actor.ID, "campaign_create", details)
	emit(ctx, s.events, s.logger, EventCampaignCreated, campaign.ID, campaign.UUID, &actor.ID)

	detail := toCampaignDetail(campaign)
	return &detail, nil
}

// Update applies the fields present in req and leaves the rest untouched.
// The slug keeps its original value when the title changes.
func (s *CampaignService) Update(ctx context.Context, actor *models.User, rawID string, req dto.CampaignUpdateRequest) (*dto.CampaignDetail, error) {
	// 1. Verify campaign exists
	campaign, err := s.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	wasPublished := campaign.Status == models.CampaignPublished

	// 2. Apply provided fields; null clears a nullable column
	if err := rejectNulls(req.Null, "title", "urgency", "cost_estimate", "target_amount", "status"); err != nil {
		return nil, err
	}
	var columns []string
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be blank", ErrValidation)
		}
		campaign.Title = title
		columns = append(columns, "title")
	}
	if req.ShortDescription != nil {
		campaign.ShortDescription = trimmed(req.ShortDescription)
		columns = append(columns, "short_description")
	} else if req.Null("short_description") {
		campaign.ShortDescription = nil
		columns = append(columns, "short_description")
	}
	if req.FullDescription != nil {
		campaign.FullDescription = trimmed(req.FullDescription)
		columns = append(columns, "full_description")
	} else if req.Null("full_description") {
		campaign.FullDescription = nil
		columns = append(columns, "full_description")
	}
	if req.HospitalID != nil {
		if err := s.checkHospital(ctx, *req.HospitalID); err != nil {
			return nil, err
		}
		campaign.HospitalID = req.HospitalID
		columns = append(columns, "hospital_id")
	} else if req.Null("hospital_id") {
		campaign.HospitalID = nil
		columns = append(columns, "hospital_id")
	}
	if req.City != nil {
		campaign.City = trimmed(req.City)
		columns = append(columns, "city")
	} else if req.Null("city") {
		campaign.City = nil
		columns = append(columns, "city")
	}
	if req.District != nil {
		campaign.District = trimmed(req.District)
		columns = append(columns, "district")
	} else if req.Null("district") {
		campaign.District = nil
		columns = append(columns, "district")
	}
	if req.Category != nil {
		campaign.Category = trimmed(req.Category)
		columns = append(columns, "category")
	} else if req.Null("category") {
		campaign.Category = nil
		columns = append(columns, "category")
	}
	if req.Urgency != nil {
		campaign.Urgency = *req.Urgency
		columns = append(columns, "urgency")
	}
	if req.CostEstimate != nil {
		campaign.CostEstimate = req.CostEstimate.Round(2)
		columns = append(columns, "cost_estimate")
	}
	if req.TargetAmount != nil {
		campaign.TargetAmount = req.TargetAmount.Round(2)
		columns = append(columns, "target_amount")
	}
	if req.Status != nil {
		campaign.Status = *req.Status
		columns = append(columns, "status")
		if campaign.Status == models.CampaignPublished && campaign.PublishedAt == nil {
			now := s.now()
			campaign.PublishedAt = &now
			columns = append(columns, "published_at")
		}
	}

	// 3. Persist
	if err := s.campaigns.Update(ctx, campaign, columns); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	if len(columns) > 0 {
		details := fmt.Sprintf("Updated campaign %s: %s", campaign.Slug, strings.Join(columns, ", "))
		_ = s.audit.CreateAuditLog(ctx, &actor.ID, "campaign_update", details)
	}
	if !wasPublished && campaign.Status == models.CampaignPublished {
		emit(ctx, s.events, s.logger, EventCampaignPublished, campaign.ID, campaign.UUID, &actor.ID)
	}

	detail := toCampaignDetail(campaign)
	return &detail, nil
}

// Delete soft deletes a campaign. Images, documents and followers stay in
// the store but become unreachable through the campaign.
func (s *CampaignService) Delete(ctx context.Context, actor *models.User, rawID string) error {
	campaign, err := s.Resolve(ctx, rawID)
	if err != nil {
		return err
	}

	if err := s.campaigns.SoftDelete(ctx, campaign.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	details := fmt.Sprintf("Deleted campaign: %s (slug: %s)", campaign.Title, campaign.Slug)
	_ = s.audit.CreateAuditLog(ctx, &actor.ID, "campaign_delete", details)
	emit(ctx, s.events, s.logger, EventCampaignDeleted, campaign.ID, campaign.UUID, &actor.ID)

	return nil
}

// Resolve loads a live campaign by any of its identifiers
func (s *CampaignService) Resolve(ctx context.Context, rawID string) (*models.Campaign, error) {
	campaign, err := s.campaigns.Find(ctx, repository.ParseIdentifier(rawID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return campaign, nil
}

func (s *CampaignService) checkHospital(ctx context.Context, hospitalID uint) error {
	if _, err := s.hospitals.Find(ctx, repository.ByID(hospitalID)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: hospital_id %d does not reference a hospital", ErrValidation, hospitalID)
		}
		return fmt.Errorf("failed to load hospital: %w", err)
	}
	return nil
}

func toCampaignSummary(c *models.Campaign) dto.CampaignSummary {
	return dto.CampaignSummary{
		ID:               c.ID,
		UUID:             c.UUID,
		Slug:             c.Slug,
		Title:            c.Title,
		ShortDescription: c.ShortDescription,
		HospitalID:       c.HospitalID,
		City:             c.City,
		Category:         c.Category,
		Urgency:          c.Urgency,
		TargetAmount:     money(c.TargetAmount),
		AmountRaised:     money(c.AmountRaised),
		Verified:         c.Verified,
		Status:           c.Status,
		PublishedAt:      c.PublishedAt,
	}
}

func toCampaignDetail(c *models.Campaign) dto.CampaignDetail {
	return dto.CampaignDetail{
		ID:               c.ID,
		UUID:             c.UUID,
		Slug:             c.Slug,
		Title:            c.Title,
		ShortDescription: c.ShortDescription,
		FullDescription:  c.FullDescription,
		HospitalID:       c.HospitalID,
		City:             c.City,
		District:         c.District,
		Category:         c.Category,
		Urgency:          c.Urgency,
		CostEstimate:     money(c.CostEstimate),
		TargetAmount:     money(c.TargetAmount),
		AmountRaised:     money(c.AmountRaised),
		Verified:         c.Verified,
		Status:           c.Status,
		PublishedAt:      c.PublishedAt,
		CreatedBy:        c.CreatedBy,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// money renders a currency amount with exactly two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
