package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents the users table
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UUID            string         `gorm:"column:uuid;size:36;not null;uniqueIndex" json:"uuid"`
	RoleID          uint           `gorm:"not null" json:"role_id"`
	Name            *string        `gorm:"size:150" json:"name"`
	Email           string         `gorm:"size:255;not null" json:"email"`
	Phone           *string        `gorm:"size:30" json:"phone"`
	IsEmailVerified bool           `gorm:"default:false" json:"is_email_verified"`
	IsPhoneVerified bool           `gorm:"default:false" json:"is_phone_verified"`
	PasswordHash    string         `gorm:"size:255;not null" json:"-"`
	Metadata        datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Role            *Role          `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
