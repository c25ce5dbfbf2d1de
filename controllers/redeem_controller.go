package controllers

import (
	"net/http"

	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-gonic/gin"
)

// RedeemRequest represents the request body for redeeming an offer
type RedeemRequest struct {
	Slug  string `json:"slug"`
	Code  string `json:"code"`
	Email string `json:"email"`
}

// RedeemOfferBySlug handles POST /api/offers/:slug/redeem
func RedeemOfferBySlug(c *gin.Context) {
	utils.LogInfo("RedeemOfferBySlug called")

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid redeem request format: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		slug = req.Slug
	}

	result, appErr := ProcessRedemption(slug, req.Email, false)
	if appErr != nil {
		respondRedeemError(c, appErr)
		return
	}
	respondRedeemSuccess(c, result)
}

// RedeemOfferByCode handles POST /api/offers/redeem, keyed by coupon code
func RedeemOfferByCode(c *gin.Context) {
	utils.LogInfo("RedeemOfferByCode called")

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid redeem request format: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	key := req.Code
	byCode := true
	if key == "" && req.Slug != "" {
		key = req.Slug
		byCode = false
	}

	result, appErr := ProcessRedemption(key, req.Email, byCode)
	if appErr != nil {
		respondRedeemError(c, appErr)
		return
	}
	respondRedeemSuccess(c, result)
}

func respondRedeemError(c *gin.Context, appErr *utils.AppError) {
	if appErr.Code == http.StatusInternalServerError {
		utils.LogError("Redemption failed: %v", appErr.Unwrap())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	utils.LogInfo("Redemption rejected: %s", appErr.Message)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

func respondRedeemSuccess(c *gin.Context, result *RedeemResult) {
	utils.LogInfo("Offer %s redeemed, redemption ID %d, total %d",
		result.Offer.Code, result.RedemptionID, result.TotalForOffer)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"redemptionId": result.RedemptionID,
		"offer": gin.H{
			"id":          result.Offer.ID,
			"code":        result.Offer.Code,
			"slug":        result.Offer.Slug,
			"description": result.Offer.Description,
		},
		"counts": gin.H{
			"totalForOffer":         result.TotalForOffer,
			"totalForEmailAndOffer": result.TotalForEmailAndOffer,
		},
	})
}
