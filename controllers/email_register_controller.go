package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterEmailRequest represents the email registration request body
type RegisterEmailRequest struct {
	Email string `json:"email"`
}

// RegisterEmail handles POST /api/email/register. It upserts the email
// registration, always refreshes the impact_email cookie, and sends a fresh
// verification link while the address is unverified. Calling it again acts as
// a resend.
func RegisterEmail(c *gin.Context) {
	utils.LogInfo("RegisterEmail called")

	var req RegisterEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid registration request format: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	email := utils.NormalizeEmail(req.Email)
	if valid, msg := utils.ValidateEmail(email); !valid {
		utils.LogError("Registration rejected for %q: %s", req.Email, msg)
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var registration models.EmailRegistration
	err := config.DB.Where("email = ?", email).First(&registration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		registration = models.EmailRegistration{Email: email, Verified: false}
		if err := config.DB.Create(&registration).Error; err != nil {
			utils.LogError("Failed to create email registration for %s: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		utils.LogInfo("Created email registration for %s", email)
	} else if err != nil {
		utils.LogError("Failed to look up email registration for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	// Always set/refresh the cookie for future requests (180 days)
	utils.SetEmailCookie(c, email)

	if !registration.Verified {
		token := uuid.New().String()
		now := time.Now()
		updates := map[string]interface{}{
			"verification_token":   token,
			"verification_sent_at": now,
		}
		if err := config.DB.Model(&registration).Updates(updates).Error; err != nil {
			utils.LogError("Failed to store verification token for %s: %v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		verifyURL := fmt.Sprintf("%s/api/email/verify?token=%s", publicOrigin(c), url.QueryEscape(token))
		if err := utils.SendVerificationEmail(email, verifyURL); err != nil {
			// The registration itself succeeded; the visitor can request a resend
			utils.LogError("Failed to send verification email to %s: %v", email, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func publicOrigin(c *gin.Context) string {
	cfg, err := config.LoadConfig()
	if err == nil && cfg.PublicURL != "" {
		return cfg.PublicURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
