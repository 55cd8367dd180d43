package handler

import (
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	scoreService *service.ScoreService
}

func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

func (h *ScoreHandler) CampaignScores(c *gin.Context) {
	scores, err := h.scoreService.Campaigns(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, scores)
}

func (h *ScoreHandler) HospitalScores(c *gin.Context) {
	scores, err := h.scoreService.Hospitals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, scores)
}
