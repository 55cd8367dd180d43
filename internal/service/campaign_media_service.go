package service

import (
	"context"
	"errors"
	"fmt"

	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"

	"go.uber.org/zap"
)

// CampaignMediaService manages images, documents and followers. Every
// operation resolves the parent campaign first, so children of a deleted
// campaign answer ErrNotFound.
type CampaignMediaService struct {
	campaigns *CampaignService
	media     repository.CampaignMediaStore
	audit     repository.AuditStore
	events    EventPublisher
	logger    *zap.Logger
}

func NewCampaignMediaService(repos *repository.Repositories, campaigns *CampaignService, events EventPublisher, logger *zap.Logger) *CampaignMediaService {
	return &CampaignMediaService{
		campaigns: campaigns,
		media:     repos.CampaignMedia,
		audit:     repos.Audit,
		events:    events,
		logger:    logger,
	}
}

// ListImages retrieves the images of a campaign
func (s *CampaignMediaService) ListImages(ctx context.Context, rawID string) ([]dto.CampaignImageResponse, error) {
	campaign, err := s.campaigns.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	images, err := s.media.ListImages(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	out := make([]dto.CampaignImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, toImageResponse(&img))
	}
	return out, nil
}

// AddImage attaches an image URL to a campaign
func (s *CampaignMediaService) AddImage(ctx context.Context, actor *models.User, rawID string, req dto.CampaignImageCreateRequest) (*dto.CampaignImageResponse, error) {
	campaign, err := s.campaigns.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}

	image := &models.CampaignImage{
		CampaignID: campaign.ID,
		URL:        req.URL,
		Caption:    trimmed(req.Caption),
		IsPrimary:  req.IsPrimary,
	}
	if err := s.media.AddImage(ctx, image); err != nil {
		return nil, s.childError("add image", err)
	}

	_ = s.audit.CreateAuditLog(ctx, &actor.ID, "campaign_image_add", fmt.Sprintf("Added image %d to campaign %s", image.ID, campaign.Slug))

	resp := toImageResponse(image)
	return &resp, nil
}

// ListDocuments retrieves the documents of a campaign
func (s *CampaignMediaService) ListDocuments(ctx context.Context, rawID string) ([]dto.CampaignDocumentResponse, error) {
	campaign, err := s.campaigns.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	documents, err := s.media.ListDocuments(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	out := make([]dto.CampaignDocumentResponse, 0, len(documents))
	for _, doc := range documents {
		out = append(out, toDocumentResponse(&doc))
	}
	return out, nil
}

// AddDocument attaches a supporting document to a campaign
func (s *CampaignMediaService) AddDocument(ctx context.Context, actor *models.User, rawID string, req dto.CampaignDocumentCreateRequest) (*dto.CampaignDocumentResponse, error) {
	campaign, err := s.campaigns.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}

	document := &models.CampaignDocument{
		CampaignID:   campaign.ID,
		Title:        req.Title,
		URL:          req.URL,
		DocumentType: trimmed(req.DocumentType),
	}
	if err := s.media.AddDocument(ctx, document); err != nil {
		return nil, s.childError("add document", err)
	}

	_ = s.audit.CreateAuditLog(ctx, &actor.ID, "campaign_document_add", fmt.Sprintf("Added document %d to campaign %s", document.ID, campaign.Slug))

	resp := toDocumentResponse(document)
	return &resp, nil
}

// ListFollowers retrieves the followers of a campaign
func (s *CampaignMediaService) ListFollowers(ctx context.Context, rawID string) ([]dto.CampaignFollowerResponse, error) {
	campaign, err := s.campaigns.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	followers, err := s.media.ListFollowers(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	out := make([]dto.CampaignFollowerResponse, 0, len(followers))
	for _, f := range followers {
		out = append(out, toFollowerResponse(&f))
	}
	return out, nil
}

// Follow records that actor follows the campaign. A second follow of the
// same campaign fails with ErrAlreadyFollowing.
func (s *CampaignMediaService) Follow(ctx context.Context, actor *models.User, rawID string) (*dto.CampaignFollowerResponse, error) {
	campaign, err := s.campaigns.Resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}

	follower := &models.CampaignFollower{CampaignID: campaign.ID, UserID: actor.ID}
	if err := s.media.AddFollower(ctx, follower); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyFollowing
		}
		return nil, s.childError("follow campaign", err)
	}

	emit(ctx, s.events, s.logger, EventCampaignFollowed, campaign.ID, campaign.UUID, &actor.ID)

	resp := toFollowerResponse(follower)
	return &resp, nil
}

// Unfollow removes actor's follow relation
func (s *CampaignMediaService) Unfollow(ctx context.Context, actor *models.User, rawID string) error {
	campaign, err := s.campaigns.Resolve(ctx, rawID)
	if err != nil {
		return err
	}

	if err := s.media.RemoveFollower(ctx, campaign.ID, actor.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFollowing
		}
		return fmt.Errorf("failed to unfollow campaign: %w", err)
	}
	return nil
}

// childError maps a child write failure. ErrNotFound here means the parent
// was deleted between resolve and write.
func (s *CampaignMediaService) childError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func toImageResponse(img *models.CampaignImage) dto.CampaignImageResponse {
	return dto.CampaignImageResponse{
		ID:         img.ID,
		CampaignID: img.CampaignID,
		URL:        img.URL,
		Caption:    img.Caption,
		IsPrimary:  img.IsPrimary,
		CreatedAt:  img.CreatedAt,
	}
}

func toDocumentResponse(doc *models.CampaignDocument) dto.CampaignDocumentResponse {
	return dto.CampaignDocumentResponse{
		ID:           doc.ID,
		CampaignID:   doc.CampaignID,
		Title:        doc.Title,
		URL:          doc.URL,
		DocumentType: doc.DocumentType,
		CreatedAt:    doc.CreatedAt,
	}
}

func toFollowerResponse(f *models.CampaignFollower) dto.CampaignFollowerResponse {
	return dto.CampaignFollowerResponse{
		ID:         f.ID,
		CampaignID: f.CampaignID,
		UserID:     f.UserID,
		FollowedAt: f.FollowedAt,
	}
}
