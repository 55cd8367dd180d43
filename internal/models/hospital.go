package models

import (
	"time"

	"gorm.io/gorm"
)

// Hospital verification states
const (
	HospitalUnverified = "unverified"
	HospitalVerified   = "verified"
	HospitalFlagged    = "flagged"
)

// Hospital represents a hospital/medical facility that hosts campaigns
type Hospital struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UUID               string         `gorm:"column:uuid;size:36;not null;uniqueIndex" json:"uuid"`
	Name               string         `gorm:"size:255;not null" json:"name"`
	City               *string        `gorm:"size:120" json:"city"`
	District           *string        `gorm:"size:120" json:"district"`
	Address            *string        `gorm:"type:text" json:"address"`
	ContactName        *string        `gorm:"size:150" json:"contact_name"`
	ContactPhone       *string        `gorm:"size:30" json:"contact_phone"`
	ContactEmail       *string        `gorm:"size:255" json:"contact_email"`
	Latitude           float64        `gorm:"type:decimal(9,6);not null" json:"latitude"`
	Longitude          float64        `gorm:"type:decimal(9,6);not null" json:"longitude"`
	VerificationStatus string         `gorm:"type:enum('unverified','verified','flagged');default:'unverified'" json:"verification_status"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}
