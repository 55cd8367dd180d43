package repository

import (
	"context"

	"hope4ever-backend/internal/models"

	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// FindByID retrieves a role by id
func (r *RoleRepository) FindByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &role, nil
}

// List returns every role ordered by id
func (r *RoleRepository) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error
	return roles, translateError(err)
}
