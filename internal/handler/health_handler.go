package handler

import (
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service string
}

func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{service: serviceName}
}

// Health reports that the process is serving requests
func (h *HealthHandler) Health(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"status":  "healthy",
		"service": h.service,
	})
}
