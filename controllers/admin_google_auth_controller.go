package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// GoogleUserInfo is the subset of the Google userinfo payload we consume
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleLogin redirects the admin to the Google consent screen
func GoogleLogin(c *gin.Context) {
	url := config.GoogleOAuthConfig.AuthCodeURL("state")
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes Google sign-in. Only pre-provisioned admin emails
// may sign in this way; OAuth never creates admin accounts.
func GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.LogError("Failed to exchange OAuth code: %v", err)
		utils.InternalServerError(c, "Failed to exchange token", nil)
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		utils.LogError("Failed to fetch Google user info: %v", err)
		utils.InternalServerError(c, "Failed to get user info", nil)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.InternalServerError(c, "Failed to read response", nil)
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.InternalServerError(c, "Failed to parse user info", nil)
		return
	}

	email := utils.NormalizeEmail(googleUser.Email)
	var admin models.AdminUser
	if err := config.DB.Preload("Companies").Where("email = ?", email).First(&admin).Error; err != nil {
		utils.LogError("Google sign-in for unknown admin email: %s", email)
		utils.Forbidden(c, "No admin account for this Google account")
		return
	}

	if !admin.IsActive {
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	if admin.GoogleID == "" {
		config.DB.Model(&admin).Update("google_id", googleUser.ID)
	}

	jwtToken, err := utils.GenerateAdminToken(&admin)
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

	utils.LogInfo("Admin %d signed in via Google", admin.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": jwtToken,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"role":  admin.Role,
		},
	})
}
