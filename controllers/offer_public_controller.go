package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func publicOfferFields(offer models.Offer) gin.H {
	return gin.H{
		"id":          offer.ID,
		"code":        offer.Code,
		"slug":        offer.Slug,
		"description": offer.Description,
		"valid_from":  offer.ValidFrom,
		"valid_until": offer.ValidUntil,
	}
}

// ListActiveOffers handles GET /api/offers, the public browse view
func ListActiveOffers(c *gin.Context) {
	utils.LogInfo("ListActiveOffers called")

	var offers []models.Offer
	if err := config.DB.Where("active = ?", true).Order("created_at DESC").Find(&offers).Error; err != nil {
		utils.LogError("Failed to fetch active offers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	out := make([]gin.H, 0, len(offers))
	for _, offer := range offers {
		out = append(out, publicOfferFields(offer))
	}
	c.JSON(http.StatusOK, gin.H{"offers": out})
}

// GetOfferBySlug handles GET /api/offers/:slug. Alongside the offer it
// reports whether the cookie email is verified, which is what the frontend
// needs to decide between the redeem button and the verify prompt.
func GetOfferBySlug(c *gin.Context) {
	utils.LogInfo("GetOfferBySlug called")

	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	var offer models.Offer
	err := config.DB.Where("slug = ?", slug).First(&offer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		return
	}
	if err != nil {
		utils.LogError("Failed to fetch offer %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	email := utils.GetEmailCookie(c)
	verified := false
	if email != "" {
		var count int64
		if err := config.DB.Model(&models.EmailRegistration{}).
			Where("email = ? AND verified = ?", email, true).
			Count(&count).Error; err == nil {
			verified = count > 0
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"offer":    publicOfferFields(offer),
		"email":    email,
		"verified": verified,
	})
}
