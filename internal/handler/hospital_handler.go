package handler

import (
	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	hospitalService *service.HospitalService
	authz           *service.AuthorizationPolicy
}

func NewHospitalHandler(hospitalService *service.HospitalService, authz *service.AuthorizationPolicy) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
		authz:           authz,
	}
}

// ListHospitals lists live hospitals, optionally filtered by city and district
func (h *HospitalHandler) ListHospitals(c *gin.Context) {
	filter := dto.HospitalFilter{
		City:     c.Query("city"),
		District: c.Query("district"),
	}

	hospitals, err := h.hospitalService.List(c.Request.Context(), filter, utils.ParsePage(c, utils.DefaultPageOptions))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, hospitals)
}

// GetHospital retrieves a hospital by numeric id or external id
func (h *HospitalHandler) GetHospital(c *gin.Context) {
	hospital, err := h.hospitalService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, hospital)
}

// CreateHospital creates a new hospital (hospital_contact and above)
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	user, ok := authorize(c, h.authz, service.OpHospitalCreate)
	if !ok {
		return
	}

	var req dto.HospitalCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	hospital, err := h.hospitalService.Create(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, hospital)
}

// UpdateHospital applies a partial update
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	user, ok := authorize(c, h.authz, service.OpHospitalUpdate)
	if !ok {
		return
	}

	var req dto.HospitalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	hospital, err := h.hospitalService.Update(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, hospital)
}

// DeleteHospital soft-deletes a hospital (admin and above)
func (h *HospitalHandler) DeleteHospital(c *gin.Context) {
	user, ok := authorize(c, h.authz, service.OpHospitalDelete)
	if !ok {
		return
	}

	if err := h.hospitalService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Hospital deleted successfully")
}
