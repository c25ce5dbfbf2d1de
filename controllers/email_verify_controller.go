package controllers

import (
	"errors"
	"net/http"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VerifyEmail handles GET /api/email/verify?token=. The token is single-use:
// it is nulled as soon as verification succeeds, so a second click on the
// same link fails.
func VerifyEmail(c *gin.Context) {
	utils.LogInfo("VerifyEmail called")

	token := c.Query("token")
	if token == "" {
		utils.LogError("Verification attempted without token")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	var registration models.EmailRegistration
	err := config.DB.Where("verification_token = ?", token).First(&registration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError("Verification failed: unknown or consumed token")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
		return
	}
	if err != nil {
		utils.LogError("Failed to look up verification token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	updates := map[string]interface{}{
		"verified":           true,
		"verification_token": nil,
	}
	if err := config.DB.Model(&registration).Updates(updates).Error; err != nil {
		utils.LogError("Failed to mark %s verified: %v", registration.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	utils.LogInfo("Email %s verified", registration.Email)

	// Refresh the cookie for 180 days and send the visitor home
	utils.SetEmailCookie(c, registration.Email)
	c.Redirect(http.StatusFound, "/")
}
