package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Campaign lifecycle states
const (
	CampaignDraft         = "draft"
	CampaignPendingReview = "pending_review"
	CampaignPublished     = "published"
	CampaignPaused        = "paused"
	CampaignFunded        = "funded"
	CampaignRejected      = "rejected"
)

// Campaign urgency levels
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// Campaign represents a fundraising campaign for a patient need
type Campaign struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UUID             string          `gorm:"column:uuid;size:36;not null;uniqueIndex" json:"uuid"`
	Slug             string          `gorm:"size:255;not null" json:"slug"`
	Title            string          `gorm:"size:255;not null" json:"title"`
	ShortDescription *string         `gorm:"size:280" json:"short_description"`
	FullDescription  *string         `gorm:"type:text" json:"full_description"`
	HospitalID       *uint           `gorm:"index" json:"hospital_id"`
	City             *string         `gorm:"size:120" json:"city"`
	District         *string         `gorm:"size:120" json:"district"`
	Category         *string         `gorm:"size:80" json:"category"`
	Urgency          string          `gorm:"type:enum('low','medium','high','critical');default:'medium'" json:"urgency"`
	CostEstimate     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"cost_estimate"`
	TargetAmount     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"target_amount"`
	AmountRaised     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount_raised"`
	Verified         bool            `gorm:"default:false" json:"verified"`
	Status           string          `gorm:"type:enum('draft','pending_review','published','paused','funded','rejected');default:'draft'" json:"status"`
	PublishedAt      *time.Time      `json:"published_at"`
	CreatedBy        *uint           `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// CampaignImage represents the campaign_images table
type CampaignImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CampaignID uint      `gorm:"not null;index" json:"campaign_id"`
	URL        string    `gorm:"column:url;size:500;not null" json:"url"`
	Caption    *string   `gorm:"size:255" json:"caption"`
	IsPrimary  bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for CampaignImage model
func (CampaignImage) TableName() string {
	return "campaign_images"
}

// CampaignDocument represents the campaign_documents table
type CampaignDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CampaignID   uint      `gorm:"not null;index" json:"campaign_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	URL          string    `gorm:"column:url;size:500;not null" json:"url"`
	DocumentType *string   `gorm:"size:100" json:"document_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for CampaignDocument model
func (CampaignDocument) TableName() string {
	return "campaign_documents"
}

// CampaignFollower represents the campaign_followers table
// A user follows a campaign at most once
type CampaignFollower struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CampaignID uint      `gorm:"not null;uniqueIndex:uq_campaign_followers_pair" json:"campaign_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:uq_campaign_followers_pair" json:"user_id"`
	FollowedAt time.Time `gorm:"autoCreateTime" json:"followed_at"`
}

// TableName specifies the table name for CampaignFollower model
func (CampaignFollower) TableName() string {
	return "campaign_followers"
}
