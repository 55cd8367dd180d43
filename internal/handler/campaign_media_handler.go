package handler

import (
	"hope4ever-backend/internal/dto"
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CampaignMediaHandler serves the images, documents and followers of a
// campaign. Every route resolves the parent campaign first.
type CampaignMediaHandler struct {
	mediaService *service.CampaignMediaService
	authz        *service.AuthorizationPolicy
}

func NewCampaignMediaHandler(mediaService *service.CampaignMediaService, authz *service.AuthorizationPolicy) *CampaignMediaHandler {
	return &CampaignMediaHandler{
		mediaService: mediaService,
		authz:        authz,
	}
}

func (h *CampaignMediaHandler) ListImages(c *gin.Context) {
	images, err := h.mediaService.ListImages(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, images)
}

func (h *CampaignMediaHandler) AddImage(c *gin.Context) {
	user, ok := authorize(c, h.authz, service.OpCampaignImageAdd)
	if !ok {
		return
	}

	var req dto.CampaignImageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	image, err := h.mediaService.AddImage(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, image)
}

func (h *CampaignMediaHandler) ListDocuments(c *gin.Context) {
	documents, err := h.mediaService.ListDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, documents)
}

func (h *CampaignMediaHandler) AddDocument(c *gin.Context) {
	user, ok := authorize(c, h.authz, service.OpCampaignDocumentAdd)
	if !ok {
		return
	}

	var req dto.CampaignDocumentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	document, err := h.mediaService.AddDocument(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, document)
}

func (h *CampaignMediaHandler) ListFollowers(c *gin.Context) {
	followers, err := h.mediaService.ListFollowers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, followers)
}

// Follow subscribes the authenticated user to the campaign
func (h *CampaignMediaHandler) Follow(c *gin.Context) {
	user, ok := authorize(c, h.authz, service.OpCampaignFollow)
	if !ok {
		return
	}

	follower, err := h.mediaService.Follow(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, follower)
}

// Unfollow removes the authenticated user's follow
func (h *CampaignMediaHandler) Unfollow(c *gin.Context) {
	user, ok := authorize(c, h.authz, service.OpCampaignUnfollow)
	if !ok {
		return
	}

	if err := h.mediaService.Unfollow(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Unfollowed campaign")
}
