package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/repository"
	"hope4ever-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HospitalService struct {
	hospitals repository.HospitalStore
	audit     repository.AuditStore
	events    EventPublisher
	logger    *zap.Logger
}

func NewHospitalService(repos *repository.Repositories, events EventPublisher, logger *zap.Logger) *HospitalService {
	return &HospitalService{
		hospitals: repos.Hospitals,
		audit:     repos.Audit,
		events:    events,
		logger:    logger,
	}
}

// List retrieves live hospitals matching the filter
func (s *HospitalService) List(ctx context.Context, filter dto.HospitalFilter, page utils.Page) ([]dto.HospitalResponse, error) {
	hospitals, err := s.hospitals.List(ctx, filter, page.Offset, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	out := make([]dto.HospitalResponse, 0, len(hospitals))
	for i := range hospitals {
		out = append(out, toHospitalResponse(&hospitals[i]))
	}
	return out, nil
}

// Get retrieves a hospital by numeric id or external id
func (s *HospitalService) Get(ctx context.Context, rawID string) (*dto.HospitalResponse, error) {
	hospital, err := s.resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}
	resp := toHospitalResponse(hospital)
	return &resp, nil
}

// Create creates a new hospital
func (s *HospitalService) Create(ctx context.Context, actor *models.User, req dto.HospitalCreateRequest) (*dto.HospitalResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be blank", ErrValidation)
	}

	hospital := &models.Hospital{
		UUID:               uuid.NewString(),
		Name:               name,
		City:               trimmed(req.City),
		District:           trimmed(req.District),
		Address:            trimmed(req.Address),
		ContactName:        trimmed(req.ContactName),
		ContactPhone:       trimmed(req.ContactPhone),
		ContactEmail:       trimmed(req.ContactEmail),
		Latitude:           *req.Latitude,
		Longitude:          *req.Longitude,
		VerificationStatus: models.HospitalUnverified,
	}
	if err := s.hospitals.Create(ctx, hospital); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create hospital: %w", err)
	}

	// Audit log
	details := fmt.Sprintf("Created hospital: %s (uuid: %s)", hospital.Name, hospital.UUID)
	_ = s.audit.CreateAuditLog(ctx, &actor.ID, "hospital_create", details)
	emit(ctx, s.events, s.logger, EventHospitalCreated, hospital.ID, hospital.UUID, &actor.ID)

	resp := toHospitalResponse(hospital)
	return &resp, nil
}

// Update applies the fields present in req and leaves the rest untouched
func (s *HospitalService) Update(ctx context.Context, actor *models.User, rawID string, req dto.HospitalUpdateRequest) (*dto.HospitalResponse, error) {
	// 1. Verify hospital exists
	hospital, err := s.resolve(ctx, rawID)
	if err != nil {
		return nil, err
	}

	// 2. Apply provided fields; null clears a nullable column
	if err := rejectNulls(req.Null, "name", "latitude", "longitude"); err != nil {
		return nil, err
	}
	var columns []string
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be blank", ErrValidation)
		}
		hospital.Name = name
		columns = append(columns, "name")
	}
	if req.City != nil {
		hospital.City = trimmed(req.City)
		columns = append(columns, "city")
	} else if req.Null("city") {
		hospital.City = nil
		columns = append(columns, "city")
	}
	if req.District != nil {
		hospital.District = trimmed(req.District)
		columns = append(columns, "district")
	} else if req.Null("district") {
		hospital.District = nil
		columns = append(columns, "district")
	}
	if req.Address != nil {
		hospital.Address = trimmed(req.Address)
		columns = append(columns, "address")
	} else if req.Null("address") {
		hospital.Address = nil
		columns = append(columns, "address")
	}
	if req.ContactName != nil {
		hospital.ContactName = trimmed(req.ContactName)
		columns = append(columns, "contact_name")
	} else if req.Null("contact_name") {
		hospital.ContactName = nil
		columns = append(columns, "contact_name")
	}
	if req.ContactPhone != nil {
		hospital.ContactPhone = trimmed(req.ContactPhone)
		columns = append(columns, "contact_phone")
	} else if req.Null("contact_phone") {
		hospital.ContactPhone = nil
		columns = append(columns, "contact_phone")
	}
	if req.ContactEmail != nil {
		hospital.ContactEmail = trimmed(req.ContactEmail)
		columns = append(columns, "contact_email")
	} else if req.Null("contact_email") {
		hospital.ContactEmail = nil
		columns = append(columns, "contact_email")
	}
	if req.Latitude != nil {
		hospital.Latitude = *req.Latitude
		columns = append(columns, "latitude")
	}
	if req.Longitude != nil {
		hospital.Longitude = *req.Longitude
		columns = append(columns, "longitude")
	}

	// 3. Persist
	if err := s.hospitals.Update(ctx, hospital, columns); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateName
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update hospital: %w", err)
	}

	if len(columns) > 0 {
		details := fmt.Sprintf("Updated hospital %s: %s", hospital.UUID, strings.Join(columns, ", "))
		_ = s.audit.CreateAuditLog(ctx, &actor.ID, "hospital_update", details)
	}

	resp := toHospitalResponse(hospital)
	return &resp, nil
}

// Delete soft deletes a hospital. Its campaigns are left as they are.
func (s *HospitalService) Delete(ctx context.Context, actor *models.User, rawID string) error {
	hospital, err := s.resolve(ctx, rawID)
	if err != nil {
		return err
	}

	if err := s.hospitals.SoftDelete(ctx, hospital.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete hospital: %w", err)
	}

	details := fmt.Sprintf("Deleted hospital: %s (uuid: %s)", hospital.Name, hospital.UUID)
	_ = s.audit.CreateAuditLog(ctx, &actor.ID, "hospital_delete", details)
	emit(ctx, s.events, s.logger, EventHospitalDeleted, hospital.ID, hospital.UUID, &actor.ID)

	return nil
}

func (s *HospitalService) resolve(ctx context.Context, rawID string) (*models.Hospital, error) {
	hospital, err := s.hospitals.Find(ctx, repository.ParseIdentifier(rawID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load hospital: %w", err)
	}
	return hospital, nil
}

func toHospitalResponse(h *models.Hospital) dto.HospitalResponse {
	return dto.HospitalResponse{
		ID:                 h.ID,
		UUID:               h.UUID,
		Name:               h.Name,
		City:               h.City,
		District:           h.District,
		Address:            h.Address,
		ContactName:        h.ContactName,
		ContactPhone:       h.ContactPhone,
		ContactEmail:       h.ContactEmail,
		Latitude:           h.Latitude,
		Longitude:          h.Longitude,
		VerificationStatus: h.VerificationStatus,
		CreatedAt:          h.CreatedAt,
		UpdatedAt:          h.UpdatedAt,
	}
}
