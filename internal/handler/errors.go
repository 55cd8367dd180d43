package handler

import (
	"errors"
	"net/http"

	"hope4ever-backend/internal/middleware"
	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a domain error onto the response envelope. Unexpected
// errors are attached to the context for the request logger and answered
// with a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRole):
		utils.CodedErrorResponse(c, http.StatusBadRequest, "invalid_role", err.Error())
	case errors.Is(err, service.ErrValidation):
		utils.CodedErrorResponse(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUnauthenticated):
		c.Header("WWW-Authenticate", "Bearer")
		utils.ErrorResponse(c, http.StatusUnauthorized, middleware.UnauthenticatedMessage)
	case errors.Is(err, service.ErrForbidden):
		utils.CodedErrorResponse(c, http.StatusForbidden, "forbidden", service.ErrForbidden.Error())
	case errors.Is(err, service.ErrNotFollowing):
		utils.CodedErrorResponse(c, http.StatusNotFound, "not_following", err.Error())
	case errors.Is(err, service.ErrNotFound):
		utils.CodedErrorResponse(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrDuplicateEmail):
		utils.CodedErrorResponse(c, http.StatusConflict, "duplicate_email", err.Error())
	case errors.Is(err, service.ErrDuplicateName):
		utils.CodedErrorResponse(c, http.StatusConflict, "duplicate_name", err.Error())
	case errors.Is(err, service.ErrAlreadyFollowing):
		utils.CodedErrorResponse(c, http.StatusConflict, "already_following", err.Error())
	case errors.Is(err, service.ErrSlugConflict):
		utils.CodedErrorResponse(c, http.StatusConflict, "slug_conflict", err.Error())
	default:
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bindError answers a request whose body failed to bind or validate
func bindError(c *gin.Context, err error) {
	utils.CodedErrorResponse(c, http.StatusBadRequest, "validation_error", "Invalid request body: "+err.Error())
}

// authorize checks the authenticated user against op and answers the
// request itself when the check fails.
func authorize(c *gin.Context, authz *service.AuthorizationPolicy, op service.Operation) (*models.User, bool) {
	user := middleware.CurrentUser(c)
	if err := authz.Authorize(c.Request.Context(), user, op); err != nil {
		respondError(c, err)
		return nil, false
	}
	return user, true
}
