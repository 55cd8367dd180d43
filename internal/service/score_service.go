package service

import (
	"context"
	"fmt"

	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"
)

// CampaignScoreLimit bounds the campaign ranking.
const CampaignScoreLimit = 100

// ScoreService reads the priority rankings computed in the store.
type ScoreService struct {
	scores repository.ScoreStore
}

func NewScoreService(repos *repository.Repositories) *ScoreService {
	return &ScoreService{scores: repos.Scores}
}

// Campaigns returns the top campaigns by weighted score
func (s *ScoreService) Campaigns(ctx context.Context) ([]models.CampaignScore, error) {
	scores, err := s.scores.CampaignScores(ctx, CampaignScoreLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign scores: %w", err)
	}
	return scores, nil
}

// Hospitals returns hospitals by descending priority score
func (s *ScoreService) Hospitals(ctx context.Context) ([]models.HospitalScore, error) {
	scores, err := s.scores.HospitalScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load hospital scores: %w", err)
	}
	return scores, nil
}
