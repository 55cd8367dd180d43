package repository

import (
	"context"

	"hope4ever-backend/internal/models"

	"gorm.io/gorm"
)

type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepo(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// ListByCampaign retrieves the donations to a campaign, newest first
func (r *DonationRepository) ListByCampaign(ctx context.Context, campaignID uint, offset, limit int) ([]models.Donation, error) {
	return r.list(ctx, "campaign_id = ?", campaignID, offset, limit)
}

// ListByUser retrieves the donations made by a user, newest first
func (r *DonationRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Donation, error) {
	return r.list(ctx, "user_id = ?", userID, offset, limit)
}

func (r *DonationRepository) list(ctx context.Context, cond string, id uint, offset, limit int) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.WithContext(ctx).
		Where(cond, id).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&donations).Error
	return donations, translateError(err)
}
