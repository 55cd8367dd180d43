package handler

import (
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	donationService *service.DonationService
}

func NewDonationHandler(donationService *service.DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

// ListByCampaign lists donations to a campaign, newest first
func (h *DonationHandler) ListByCampaign(c *gin.Context) {
	donations, err := h.donationService.ListByCampaign(c.Request.Context(), c.Param("id"), utils.ParsePage(c, utils.DonationPageOptions))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, donations)
}

// ListByUser lists donations made by a user, newest first
func (h *DonationHandler) ListByUser(c *gin.Context) {
	donations, err := h.donationService.ListByUser(c.Request.Context(), c.Param("id"), utils.ParsePage(c, utils.DonationPageOptions))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, donations)
}
