package repository

import (
	"context"
	"time"

	"hope4ever-backend/internal/models"
	"hope4ever-backend/pkg/slug"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepo(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Find retrieves a live campaign by numeric id, external id or slug
func (r *CampaignRepository) Find(ctx context.Context, ident Identifier) (*models.Campaign, error) {
	q, ok := ident.where(r.db.WithContext(ctx), true)
	if !ok {
		return nil, ErrNotFound
	}
	var campaign models.Campaign
	if err := q.First(&campaign).Error; err != nil {
		return nil, translateError(err)
	}
	return &campaign, nil
}

// List retrieves live campaigns, newest publication first
func (r *CampaignRepository) List(ctx context.Context, status string, offset, limit int) ([]models.Campaign, error) {
	q := r.db.WithContext(ctx).Model(&models.Campaign{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var campaigns []models.Campaign
	err := q.Order("published_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&campaigns).Error
	return campaigns, translateError(err)
}

// Search runs a boolean-mode full-text match over title and descriptions
func (r *CampaignRepository) Search(ctx context.Context, query string, limit int) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.WithContext(ctx).
		Where("MATCH(title, short_description, full_description) AGAINST (? IN BOOLEAN MODE)", query).
		Order("published_at DESC").Order("id DESC").
		Limit(limit).
		Find(&campaigns).Error
	return campaigns, translateError(err)
}

// Create derives a free slug from the title and inserts the campaign in the
// same transaction. A concurrent creator that takes the slug first makes the
// insert fail with ErrDuplicate.
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := slug.Generate(campaign.Title, func(candidate string) (bool, error) {
			var count int64
			err := tx.Model(&models.Campaign{}).Where("slug = ?", candidate).Count(&count).Error
			return count > 0, err
		})
		if err != nil {
			return err
		}
		campaign.Slug = s
		return tx.Create(campaign).Error
	})
	return translateError(err)
}

// Update writes only the named columns of campaign
func (r *CampaignRepository) Update(ctx context.Context, campaign *models.Campaign, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(campaign).Select(withUpdatedAt(columns)).Updates(campaign)
		if res.Error != nil {
			return res.Error
		}
		return tx.First(campaign, campaign.ID).Error
	})
	return translateError(err)
}

// SoftDelete stamps deleted_at on a live campaign
func (r *CampaignRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Campaign{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SyncFunding recomputes amount_raised from completed donations and marks
// published campaigns that reached their target as funded.
func (r *CampaignRepository) SyncFunding(ctx context.Context) (FundingResult, error) {
	var result FundingResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		// 1. Refresh raised totals
		res := tx.Exec(`
			UPDATE campaigns c
			LEFT JOIN (
				SELECT campaign_id, SUM(amount) AS total
				FROM donations
				WHERE status = ?
				GROUP BY campaign_id
			) d ON d.campaign_id = c.id
			SET c.amount_raised = COALESCE(d.total, 0), c.updated_at = ?
			WHERE c.deleted_at IS NULL AND c.amount_raised <> COALESCE(d.total, 0)`,
			models.DonationCompleted, now)
		if res.Error != nil {
			return res.Error
		}
		result.Synced = res.RowsAffected

		// 2. Collect campaigns that crossed their target
		if err := tx.Model(&models.Campaign{}).
			Where("status = ? AND target_amount > 0 AND amount_raised >= target_amount", models.CampaignPublished).
			Pluck("id", &result.FundedIDs).Error; err != nil {
			return err
		}
		if len(result.FundedIDs) == 0 {
			return nil
		}

		// 3. Flip them to funded
		return tx.Model(&models.Campaign{}).
			Where("id IN ?", result.FundedIDs).
			Updates(map[string]interface{}{"status": models.CampaignFunded, "updated_at": now}).Error
	})
	return result, translateError(err)
}

// FundingResult reports what a funding sync changed
type FundingResult struct {
	Synced    int64
	FundedIDs []uint
}
