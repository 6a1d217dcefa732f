package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/auth"
)

const viewerKey = "viewer"

// Authenticate resolves the Authorization bearer token to a profile
// and attaches the viewer to the request context. A token whose
// profile has been deleted is rejected the same as a bad token.
func Authenticate(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
			return
		}

		profile, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(viewerKey, model.Viewer{ProfileID: profile.ID, Role: profile.Role})
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allow list.
// Must run after Authenticate.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		viewer, ok := GetViewer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if _, ok := allowed[viewer.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// GetViewer returns the authenticated viewer attached by Authenticate.
func GetViewer(c *gin.Context) (model.Viewer, bool) {
	v, ok := c.Get(viewerKey)
	if !ok {
		return model.Viewer{}, false
	}
	viewer, ok := v.(model.Viewer)
	return viewer, ok
}
