package service

import (
	"hope4ever-backend/internal/config"
	"hope4ever-backend/internal/repository"
	"hope4ever-backend/pkg/utils"

	"go.uber.org/zap"
)

// Service groups every domain service
type Service struct {
	Auth          *AuthService
	Authz         *AuthorizationPolicy
	Hospital      *HospitalService
	Campaign      *CampaignService
	CampaignMedia *CampaignMediaService
	Donation      *DonationService
	Score         *ScoreService
	Worker        *WorkerService
}

// NewService wires the services over one set of stores
func NewService(
	cfg *config.Config,
	repos *repository.Repositories,
	hasher *utils.PasswordHasher,
	tokens *utils.TokenManager,
	events EventPublisher,
	logger *zap.Logger,
) *Service {
	if events == nil {
		events = NopPublisher{}
	}
	campaigns := NewCampaignService(repos, events, logger)

	return &Service{
		Auth:          NewAuthService(repos, hasher, tokens, cfg.Auth.SelfRegisterRoles, logger),
		Authz:         NewAuthorizationPolicy(repos.Roles, logger),
		Hospital:      NewHospitalService(repos, events, logger),
		Campaign:      campaigns,
		CampaignMedia: NewCampaignMediaService(repos, campaigns, events, logger),
		Donation:      NewDonationService(repos, campaigns),
		Score:         NewScoreService(repos),
		Worker:        NewWorkerService(repos, events, cfg.Funding.SyncInterval, logger),
	}
}
