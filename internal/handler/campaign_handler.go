package handler

import (
	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignService *service.CampaignService
	authz           *service.AuthorizationPolicy
}

func NewCampaignHandler(campaignService *service.CampaignService, authz *service.AuthorizationPolicy) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		authz:           authz,
	}
}

// ListCampaigns lists campaigns, or searches them when `q` is present
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	query := dto.CampaignQuery{
		Q:      c.Query("q"),
		Status: c.Query("status"),
	}

	campaigns, err := h.campaignService.List(c.Request.Context(), query, utils.ParsePage(c, utils.DefaultPageOptions))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, campaigns)
}

// GetCampaign retrieves a campaign by numeric id, external id or slug
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, campaign)
}

// CreateCampaign creates a draft campaign (hospital_contact and above)
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	user, ok := authorize(c, h.authz, service.OpCampaignCreate)
	if !ok {
		return
	}

	var req dto.CampaignCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	campaign, err := h.campaignService.Create(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, campaign)
}

// UpdateCampaign applies a partial update
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	user, ok := authorize(c, h.authz, service.OpCampaignUpdate)
	if !ok {
		return
	}

	var req dto.CampaignUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	campaign, err := h.campaignService.Update(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, campaign)
}

// DeleteCampaign soft-deletes a campaign (admin and above)
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	user, ok := authorize(c, h.authz, service.OpCampaignDelete)
	if !ok {
		return
	}

	if err := h.campaignService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Campaign deleted successfully")
}
