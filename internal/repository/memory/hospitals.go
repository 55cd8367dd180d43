package memory

import (
	"context"
	"fmt"
	"strings"

	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"

	"gorm.io/gorm"
)

type HospitalRepository struct{ s *Store }

func (r *HospitalRepository) Find(_ context.Context, ident repository.Identifier) (*models.Hospital, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if h := r.s.hospital(ident); h != nil {
		out := *h
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (r *HospitalRepository) List(_ context.Context, filter dto.HospitalFilter, offset, limit int) ([]models.Hospital, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows []models.Hospital
	for _, h := range r.s.hospitals {
		if !live(h.DeletedAt) {
			continue
		}
		if filter.City != "" && !equalPtr(h.City, filter.City) {
			continue
		}
		if filter.District != "" && !equalPtr(h.District, filter.District) {
			continue
		}
		rows = append(rows, *h)
	}
	return page(rows, offset, limit), nil
}

func (r *HospitalRepository) Create(_ context.Context, hospital *models.Hospital) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.hospitalNameTaken(hospital.Name, 0) {
		return repository.ErrDuplicate
	}
	now := r.s.now()
	hospital.ID = r.s.nextID()
	hospital.CreatedAt, hospital.UpdatedAt = now, now
	if hospital.VerificationStatus == "" {
		hospital.VerificationStatus = models.HospitalUnverified
	}
	row := *hospital
	r.s.hospitals = append(r.s.hospitals, &row)
	return nil
}

func (r *HospitalRepository) Update(_ context.Context, hospital *models.Hospital, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := r.s.hospital(repository.ByID(hospital.ID))
	if row == nil {
		return repository.ErrNotFound
	}
	for _, col := range columns {
		if col == "name" && r.s.hospitalNameTaken(hospital.Name, hospital.ID) {
			return repository.ErrDuplicate
		}
	}

	next := *row
	for _, col := range columns {
		switch col {
		case "name":
			next.Name = hospital.Name
		case "city":
			next.City = hospital.City
		case "district":
			next.District = hospital.District
		case "address":
			next.Address = hospital.Address
		case "contact_name":
			next.ContactName = hospital.ContactName
		case "contact_phone":
			next.ContactPhone = hospital.ContactPhone
		case "contact_email":
			next.ContactEmail = hospital.ContactEmail
		case "latitude":
			next.Latitude = hospital.Latitude
		case "longitude":
			next.Longitude = hospital.Longitude
		case "verification_status":
			next.VerificationStatus = hospital.VerificationStatus
		default:
			return fmt.Errorf("unknown hospital column %q", col)
		}
	}
	next.UpdatedAt = r.s.now()
	*row = next
	*hospital = next
	return nil
}

func (r *HospitalRepository) SoftDelete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row := r.s.hospital(repository.ByID(id))
	if row == nil {
		return repository.ErrNotFound
	}
	row.DeletedAt = gorm.DeletedAt{Time: r.s.now(), Valid: true}
	return nil
}

func (s *Store) hospital(ident repository.Identifier) *models.Hospital {
	if ident.Kind == repository.KindSlug {
		return nil
	}
	for _, h := range s.hospitals {
		if live(h.DeletedAt) && ident.Matches(h.ID, h.UUID, "") {
			return h
		}
	}
	return nil
}

func (s *Store) hospitalNameTaken(name string, exceptID uint) bool {
	for _, h := range s.hospitals {
		if live(h.DeletedAt) && h.ID != exceptID && strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

func equalPtr(p *string, v string) bool {
	return p != nil && strings.EqualFold(*p, v)
}
