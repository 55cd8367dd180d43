package repository

import (
	"context"

	"hope4ever-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CampaignMediaRepository stores the child records of a campaign: images,
// documents and followers.
type CampaignMediaRepository struct {
	db *gorm.DB
}

func NewCampaignMediaRepo(db *gorm.DB) *CampaignMediaRepository {
	return &CampaignMediaRepository{db: db}
}

// ListImages retrieves the images of a campaign, primary image first
func (r *CampaignMediaRepository) ListImages(ctx context.Context, campaignID uint) ([]models.CampaignImage, error) {
	var images []models.CampaignImage
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("is_primary DESC").Order("id ASC").
		Find(&images).Error
	return images, translateError(err)
}

// AddImage attaches an image to a live campaign
func (r *CampaignMediaRepository) AddImage(ctx context.Context, image *models.CampaignImage) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockLiveCampaign(tx, image.CampaignID); err != nil {
			return err
		}
		return tx.Create(image).Error
	})
	return translateError(err)
}

// ListDocuments retrieves the documents of a campaign
func (r *CampaignMediaRepository) ListDocuments(ctx context.Context, campaignID uint) ([]models.CampaignDocument, error) {
	var documents []models.CampaignDocument
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&documents).Error
	return documents, translateError(err)
}

// AddDocument attaches a document to a live campaign
func (r *CampaignMediaRepository) AddDocument(ctx context.Context, document *models.CampaignDocument) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockLiveCampaign(tx, document.CampaignID); err != nil {
			return err
		}
		return tx.Create(document).Error
	})
	return translateError(err)
}

// ListFollowers retrieves the followers of a campaign, oldest first
func (r *CampaignMediaRepository) ListFollowers(ctx context.Context, campaignID uint) ([]models.CampaignFollower, error) {
	var followers []models.CampaignFollower
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("followed_at ASC").Order("id ASC").
		Find(&followers).Error
	return followers, translateError(err)
}

// AddFollower records that a user follows a live campaign. The campaign row
// is locked so concurrent follows of the same campaign queue behind each
// other; uq_campaign_followers_pair backs the check.
func (r *CampaignMediaRepository) AddFollower(ctx context.Context, follower *models.CampaignFollower) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockLiveCampaign(tx, follower.CampaignID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.CampaignFollower{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("campaign_id = ? AND user_id = ?", follower.CampaignID, follower.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Create(follower).Error
	})
	return translateError(err)
}

// RemoveFollower deletes the follow relation of a user and a campaign
func (r *CampaignMediaRepository) RemoveFollower(ctx context.Context, campaignID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("campaign_id = ? AND user_id = ?", campaignID, userID).
		Delete(&models.CampaignFollower{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// lockLiveCampaign takes a row lock on a non-deleted campaign for the rest
// of the transaction.
func lockLiveCampaign(tx *gorm.DB, campaignID uint) error {
	var campaign models.Campaign
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&campaign, campaignID).Error
}
