package repository

import (
	"context"

	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"

	"gorm.io/gorm"
)

// UserStore persists users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Find(ctx context.Context, ident Identifier) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RoleStore reads role reference data.
type RoleStore interface {
	FindByID(ctx context.Context, id uint) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
}

// AuditStore appends to the audit trail.
type AuditStore interface {
	CreateAuditLog(ctx context.Context, userID *uint, action string, details string) error
}

// HospitalStore persists hospitals.
type HospitalStore interface {
	Find(ctx context.Context, ident Identifier) (*models.Hospital, error)
	List(ctx context.Context, filter dto.HospitalFilter, offset, limit int) ([]models.Hospital, error)
	Create(ctx context.Context, hospital *models.Hospital) error
	Update(ctx context.Context, hospital *models.Hospital, columns []string) error
	SoftDelete(ctx context.Context, id uint) error
}

// CampaignStore persists campaigns.
type CampaignStore interface {
	Find(ctx context.Context, ident Identifier) (*models.Campaign, error)
	List(ctx context.Context, status string, offset, limit int) ([]models.Campaign, error)
	Search(ctx context.Context, query string, limit int) ([]models.Campaign, error)
	Create(ctx context.Context, campaign *models.Campaign) error
	Update(ctx context.Context, campaign *models.Campaign, columns []string) error
	SoftDelete(ctx context.Context, id uint) error
	SyncFunding(ctx context.Context) (FundingResult, error)
}

// CampaignMediaStore persists the child records of campaigns.
type CampaignMediaStore interface {
	ListImages(ctx context.Context, campaignID uint) ([]models.CampaignImage, error)
	AddImage(ctx context.Context, image *models.CampaignImage) error
	ListDocuments(ctx context.Context, campaignID uint) ([]models.CampaignDocument, error)
	AddDocument(ctx context.Context, document *models.CampaignDocument) error
	ListFollowers(ctx context.Context, campaignID uint) ([]models.CampaignFollower, error)
	AddFollower(ctx context.Context, follower *models.CampaignFollower) error
	RemoveFollower(ctx context.Context, campaignID, userID uint) error
}

// DonationStore reads donations.
type DonationStore interface {
	ListByCampaign(ctx context.Context, campaignID uint, offset, limit int) ([]models.Donation, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Donation, error)
}

// ScoreStore reads the priority rankings.
type ScoreStore interface {
	CampaignScores(ctx context.Context, limit int) ([]models.CampaignScore, error)
	HospitalScores(ctx context.Context) ([]models.HospitalScore, error)
}

// Repositories groups every store the services depend on.
type Repositories struct {
	Users         UserStore
	Roles         RoleStore
	Audit         AuditStore
	Hospitals     HospitalStore
	Campaigns     CampaignStore
	CampaignMedia CampaignMediaStore
	Donations     DonationStore
	Scores        ScoreStore
}

// NewRepositories builds the MySQL-backed stores.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepo(db),
		Roles:         NewRoleRepo(db),
		Audit:         NewAuditRepo(db),
		Hospitals:     NewHospitalRepo(db),
		Campaigns:     NewCampaignRepo(db),
		CampaignMedia: NewCampaignMediaRepo(db),
		Donations:     NewDonationRepo(db),
		Scores:        NewScoreRepo(db),
	}
}

var (
	_ UserStore          = (*UserRepository)(nil)
	_ RoleStore          = (*RoleRepository)(nil)
	_ AuditStore         = (*AuditRepository)(nil)
	_ HospitalStore      = (*HospitalRepository)(nil)
	_ CampaignStore      = (*CampaignRepository)(nil)
	_ CampaignMediaStore = (*CampaignMediaRepository)(nil)
	_ DonationStore      = (*DonationRepository)(nil)
	_ ScoreStore         = (*ScoreRepository)(nil)
)

// withUpdatedAt appends updated_at to a Select list without writing into
// the caller's backing array.
func withUpdatedAt(columns []string) []string {
	return append(columns[:len(columns):len(columns)], "updated_at")
}
