package controllers

import (
	"time"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AdminLoginRequest represents the admin login request body
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates an admin and issues both a JWT (for API clients)
// and a cookie session (for the browser panel)
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	email := utils.NormalizeEmail(req.Email)
	var admin models.AdminUser
	if err := config.DB.Preload("Companies").Where("email = ?", email).First(&admin).Error; err != nil {
		utils.LogError("Login failed, unknown admin email: %s", email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !admin.IsActive {
		utils.LogError("Login attempt by inactive admin: %d", admin.ID)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Login failed, wrong password for admin: %d", admin.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.LogError("Failed to generate token for admin %d: %v", admin.ID, err)
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	session := sessions.Default(c)
	session.Set("admin_id", admin.ID)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for admin %d: %v", admin.ID, err)
	}

	config.DB.Model(&admin).Update("last_login_at", time.Now())

	utils.LogInfo("Admin %d logged in", admin.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":        admin.ID,
			"email":     admin.Email,
			"role":      admin.Role,
			"companies": admin.Companies,
		},
	})
}

// AdminLogout clears the admin cookie session
func AdminLogout(c *gin.Context) {
	utils.LogInfo("AdminLogout called")

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear session: %v", err)
		utils.InternalServerError(c, "Failed to log out", nil)
		return
	}

	utils.Success(c, "Logged out", nil)
}
