package repository

import (
	"context"

	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"

	"gorm.io/gorm"
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepo(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// Find retrieves a live hospital by numeric id or external id
func (r *HospitalRepository) Find(ctx context.Context, ident Identifier) (*models.Hospital, error) {
	q, ok := ident.where(r.db.WithContext(ctx), false)
	if !ok {
		return nil, ErrNotFound
	}
	var hospital models.Hospital
	if err := q.First(&hospital).Error; err != nil {
		return nil, translateError(err)
	}
	return &hospital, nil
}

// List retrieves live hospitals matching the filter. No ordering is applied.
func (r *HospitalRepository) List(ctx context.Context, filter dto.HospitalFilter, offset, limit int) ([]models.Hospital, error) {
	q := r.db.WithContext(ctx).Model(&models.Hospital{})
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.District != "" {
		q = q.Where("district = ?", filter.District)
	}

	var hospitals []models.Hospital
	err := q.Offset(offset).Limit(limit).Find(&hospitals).Error
	return hospitals, translateError(err)
}

// Create inserts a hospital unless a live hospital already has the name
func (r *HospitalRepository) Create(ctx context.Context, hospital *models.Hospital) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.checkNameFree(tx, hospital.Name, 0); err != nil {
			return err
		}
		return tx.Create(hospital).Error
	})
	return translateError(err)
}

// Update writes only the named columns of hospital
func (r *HospitalRepository) Update(ctx context.Context, hospital *models.Hospital, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, col := range columns {
			if col == "name" {
				if err := r.checkNameFree(tx, hospital.Name, hospital.ID); err != nil {
					return err
				}
			}
		}
		res := tx.Model(hospital).Select(withUpdatedAt(columns)).Updates(hospital)
		if res.Error != nil {
			return res.Error
		}
		return tx.First(hospital, hospital.ID).Error
	})
	return translateError(err)
}

// SoftDelete stamps deleted_at on a live hospital
func (r *HospitalRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Hospital{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *HospitalRepository) checkNameFree(tx *gorm.DB, name string, exceptID uint) error {
	q := tx.Model(&models.Hospital{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return nil
}
