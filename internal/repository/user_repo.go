package repository

import (
	"context"

	"hope4ever-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user unless a live user already owns the email.
// The uq_users_email_active index settles concurrent registrations.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Create(user).Error
	})
	return translateError(err)
}

// Find retrieves a live user by numeric id or external id, with its role
func (r *UserRepository) Find(ctx context.Context, ident Identifier) (*models.User, error) {
	q, ok := ident.where(r.db.WithContext(ctx), false)
	if !ok {
		return nil, ErrNotFound
	}
	var user models.User
	if err := q.Preload("Role").First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindByEmail retrieves a live user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}
