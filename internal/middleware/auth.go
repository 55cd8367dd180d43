package middleware

import (
	"net/http"
	"strings"

	"hope4ever-backend/internal/models"
	"hope4ever-backend/internal/service"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// UnauthenticatedMessage is the single message returned for every identity
// failure so callers cannot tell which check rejected them.
const UnauthenticatedMessage = "Could not validate credentials"

// AuthMiddleware resolves the bearer token to a user and stores it in the
// request context. Requests without a valid token are rejected with 401.
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			utils.ErrorResponse(c, http.StatusUnauthorized, UnauthenticatedMessage)
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			utils.ErrorResponse(c, http.StatusUnauthorized, UnauthenticatedMessage)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// BearerToken extracts the raw token of an Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	return bearerToken(c.GetHeader("Authorization"))
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
