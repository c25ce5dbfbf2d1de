package controllers

import (
	"errors"
	"strconv"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/middleware"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListRedemptions lists redemption records, scoped through the owning offer's
// company, newest first. Optional filters: offer_id, email.
func ListRedemptions(c *gin.Context) {
	utils.LogInfo("ListRedemptions called")

	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		utils.Unauthorized(c, "Admin not found")
		return
	}

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Redemption{}).
		Joins("JOIN offers ON offers.id = redemptions.offer_id")
	if !admin.IsSuperAdmin() {
		query = query.Where("offers.company_id IN ?", admin.CompanyIDs())
	}
	if offerID := c.Query("offer_id"); offerID != "" {
		query = query.Where("redemptions.offer_id = ?", offerID)
	}
	if email := c.Query("email"); email != "" {
		query = query.Where("redemptions.email = ?", utils.NormalizeEmail(email))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count redemptions: %v", err)
		utils.InternalServerError(c, "Failed to fetch redemptions", nil)
		return
	}
	pagination.SetTotal(total)

	var redemptions []models.Redemption
	if err := query.Preload("Offer").
		Order("redemptions.created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&redemptions).Error; err != nil {
		utils.LogError("Failed to fetch redemptions: %v", err)
		utils.InternalServerError(c, "Failed to fetch redemptions", nil)
		return
	}

	utils.SendPaginatedResponse(c, "Redemptions fetched successfully", redemptions, pagination)
}

// DeleteRedemption removes a redemption record. Redemptions are immutable in
// the normal flow, so this is a superadmin-only correction tool (enforced at
// the route).
func DeleteRedemption(c *gin.Context) {
	utils.LogInfo("DeleteRedemption called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid redemption ID", nil)
		return
	}

	var redemption models.Redemption
	if err := config.DB.First(&redemption, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Redemption not found")
			return
		}
		utils.InternalServerError(c, "Failed to fetch redemption", nil)
		return
	}

	if err := config.DB.Delete(&redemption).Error; err != nil {
		utils.LogError("Failed to delete redemption %d: %v", redemption.ID, err)
		utils.InternalServerError(c, "Failed to delete redemption", nil)
		return
	}

	utils.LogInfo("Deleted redemption %d", redemption.ID)
	utils.Success(c, "Redemption deleted successfully", nil)
}
