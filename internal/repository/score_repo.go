package repository

import (
	"context"

	"hope4ever-backend/internal/models"

	"gorm.io/gorm"
)

// ScoreRepository reads the priority score views
type ScoreRepository struct {
	db *gorm.DB
}

func NewScoreRepo(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// CampaignScores returns the highest weighted campaigns
func (r *ScoreRepository) CampaignScores(ctx context.Context, limit int) ([]models.CampaignScore, error) {
	var scores []models.CampaignScore
	err := r.db.WithContext(ctx).
		Order("weighted_score DESC").Order("campaign_id ASC").
		Limit(limit).
		Find(&scores).Error
	return scores, translateError(err)
}

// HospitalScores returns every hospital by descending priority
func (r *ScoreRepository) HospitalScores(ctx context.Context) ([]models.HospitalScore, error) {
	var scores []models.HospitalScore
	err := r.db.WithContext(ctx).
		Order("priority_score DESC").Order("hospital_id ASC").
		Find(&scores).Error
	return scores, translateError(err)
}
