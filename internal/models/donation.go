package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation states
const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
	DonationRefunded  = "refunded"
)

// Donation types
const (
	DonationMonetary = "monetary"
	DonationInKind   = "in_kind"
)

// Donation represents the donations table
// Rows are written by the payment flow; this service only reads them
type Donation struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UUID             string          `gorm:"column:uuid;size:36;not null;uniqueIndex" json:"uuid"`
	CampaignID       uint            `gorm:"not null;index" json:"campaign_id"`
	UserID           *uint           `gorm:"index" json:"user_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	DonationType     string          `gorm:"type:enum('monetary','in_kind');default:'monetary'" json:"donation_type"`
	Message          *string         `gorm:"type:text" json:"message"`
	IsAnonymous      bool            `gorm:"default:false" json:"is_anonymous"`
	PaymentMethod    *string         `gorm:"size:50" json:"payment_method"`
	PaymentReference *string         `gorm:"size:255" json:"payment_reference"`
	Status           string          `gorm:"type:enum('pending','completed','failed','refunded');default:'pending'" json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Donation model
func (Donation) TableName() string {
	return "donations"
}
