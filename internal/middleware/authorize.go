package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"academyhub/api/internal/models"
)

// RequireRoles denies the request unless the authenticated user holds one of
// the given roles. An unrecognized role in the store denies, never permits.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	roleSet := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if !user.Role.Valid() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

// RequireAcademyScope pins the route's academy id parameter to the caller's
// own academy. super_admin is unscoped; everyone else gets 403 on any
// cross-academy id.
func RequireAcademyScope(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if user.Role == models.RoleSuperAdmin {
			c.Next()
			return
		}

		academyID := c.Param(param)
		if user.AcademyID == nil || *user.AcademyID != academyID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
