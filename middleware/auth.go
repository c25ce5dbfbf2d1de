package middleware

import (
	"net/http"
	"strings"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware authenticates an admin via a Bearer JWT, falling back
// to the cookie session set at login. The admin is loaded with its assigned
// companies so handlers can scope queries without extra lookups.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var adminID uint

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
			if tokenString == authHeader {
				utils.LogError("Invalid Bearer token format")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
				c.Abort()
				return
			}
			id, err := utils.ValidateAdminToken(tokenString)
			if err != nil {
				utils.LogError("Invalid admin token: %v", err)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
				c.Abort()
				return
			}
			adminID = id
		} else {
			session := sessions.Default(c)
			if id, ok := session.Get("admin_id").(uint); ok {
				adminID = id
			}
		}

		if adminID == 0 {
			utils.LogError("No admin credentials provided")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		utils.LogDebug("Authenticating admin ID: %d", adminID)

		var admin models.AdminUser
		if err := config.DB.Preload("Companies").First(&admin, adminID).Error; err != nil {
			utils.LogError("Admin not found: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not found"})
			c.Abort()
			return
		}

		if !admin.IsActive {
			utils.LogError("Inactive admin attempted access: %d", admin.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin account is inactive"})
			c.Abort()
			return
		}

		c.Set("admin", admin)
		utils.LogInfo("Admin %d authenticated successfully", admin.ID)
		c.Next()
	}
}

// SuperAdminMiddleware restricts a route to superadmins
func SuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, exists := c.Get("admin")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not found in context"})
			c.Abort()
			return
		}

		adminModel, ok := admin.(models.AdminUser)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid admin type"})
			c.Abort()
			return
		}

		if !adminModel.IsSuperAdmin() {
			utils.LogError("Non-superadmin attempted superadmin access: %d", adminModel.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Superadmin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentAdmin pulls the authenticated admin out of the gin context
func CurrentAdmin(c *gin.Context) (models.AdminUser, bool) {
	admin, exists := c.Get("admin")
	if !exists {
		return models.AdminUser{}, false
	}
	adminModel, ok := admin.(models.AdminUser)
	return adminModel, ok
}
