package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/middleware"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateOfferRequest represents the request body for creating an offer
type CreateOfferRequest struct {
	Code           string     `json:"code" binding:"required"`
	Slug           string     `json:"slug"`
	CompanyID      uint       `json:"company_id" binding:"required"`
	Description    string     `json:"description"`
	Active         *bool      `json:"active"`
	ValidFrom      *time.Time `json:"valid_from"`
	ValidUntil     *time.Time `json:"valid_until"`
	MaxRedemptions int        `json:"max_redemptions" binding:"required,gte=1"`
}

// UpdateOfferRequest represents the request body for updating an offer. The
// code is immutable once customers may hold it; only the listed fields move.
type UpdateOfferRequest struct {
	Description    *string    `json:"description"`
	Active         *bool      `json:"active"`
	ValidFrom      *time.Time `json:"valid_from"`
	ValidUntil     *time.Time `json:"valid_until"`
	MaxRedemptions *int       `json:"max_redemptions"`
}

// CreateOffer creates an offer for a company the acting admin manages
func CreateOffer(c *gin.Context) {
	utils.LogInfo("CreateOffer called")

	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		utils.Unauthorized(c, "Admin not found")
		return
	}

	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid offer request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if valid, msg := utils.ValidateOfferCode(req.Code); !valid {
		utils.BadRequest(c, msg, nil)
		return
	}

	if !admin.CanAccessCompany(req.CompanyID) {
		utils.LogError("Admin %d denied offer creation for company %d", admin.ID, req.CompanyID)
		utils.Forbidden(c, "You do not manage this company")
		return
	}

	var company models.Company
	if err := config.DB.First(&company, req.CompanyID).Error; err != nil {
		utils.NotFound(c, "Company not found")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(code)
	} else {
		slug = utils.Slugify(slug)
	}

	var existing models.Offer
	if err := config.DB.Where("code = ? OR slug = ?", code, slug).First(&existing).Error; err == nil {
		utils.LogError("Offer code or slug already exists: %s / %s", code, slug)
		utils.Conflict(c, "Offer code already exists", nil)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	// validFrom > validUntil is deliberately not rejected, matching the
	// admin's ability to stage windows before fixing one end
	offer := models.Offer{
		Code:           code,
		Slug:           slug,
		CompanyID:      req.CompanyID,
		Description:    req.Description,
		Active:         active,
		ValidFrom:      req.ValidFrom,
		ValidUntil:     req.ValidUntil,
		MaxRedemptions: req.MaxRedemptions,
	}
	if err := config.DB.Create(&offer).Error; err != nil {
		utils.LogError("Failed to create offer %s: %v", code, err)
		utils.InternalServerError(c, "Failed to create offer", nil)
		return
	}

	utils.LogInfo("Created offer %d (%s) for company %d", offer.ID, offer.Code, offer.CompanyID)
	utils.Created(c, "Offer created successfully", offer)
}

// ListOffers lists offers scoped to the acting admin's companies, paginated
func ListOffers(c *gin.Context) {
	utils.LogInfo("ListOffers called")

	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		utils.Unauthorized(c, "Admin not found")
		return
	}

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Offer{})
	if !admin.IsSuperAdmin() {
		query = query.Where("company_id IN ?", admin.CompanyIDs())
	}
	if companyID := c.Query("company_id"); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count offers: %v", err)
		utils.InternalServerError(c, "Failed to fetch offers", nil)
		return
	}
	pagination.SetTotal(total)

	var offers []models.Offer
	if err := query.Preload("Company").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&offers).Error; err != nil {
		utils.LogError("Failed to fetch offers: %v", err)
		utils.InternalServerError(c, "Failed to fetch offers", nil)
		return
	}

	utils.SendPaginatedResponse(c, "Offers fetched successfully", offers, pagination)
}

// GetOffer returns one offer the acting admin manages
func GetOffer(c *gin.Context) {
	utils.LogInfo("GetOffer called")

	admin, offer, ok := loadScopedOffer(c)
	if !ok {
		return
	}

	var redemptionCount int64
	if err := config.DB.Model(&models.Redemption{}).Where("offer_id = ?", offer.ID).Count(&redemptionCount).Error; err != nil {
		utils.LogError("Failed to count redemptions for offer %d: %v", offer.ID, err)
		utils.InternalServerError(c, "Failed to fetch offer", nil)
		return
	}

	utils.LogDebug("Admin %d fetched offer %d", admin.ID, offer.ID)
	utils.Success(c, "Offer fetched successfully", gin.H{
		"offer":            offer,
		"redemption_count": redemptionCount,
	})
}

// UpdateOffer mutates the editable fields of an offer
func UpdateOffer(c *gin.Context) {
	utils.LogInfo("UpdateOffer called")

	_, offer, ok := loadScopedOffer(c)
	if !ok {
		return
	}

	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.ValidFrom != nil {
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.MaxRedemptions != nil {
		if *req.MaxRedemptions < 1 {
			utils.BadRequest(c, "max_redemptions must be at least 1", nil)
			return
		}
		updates["max_redemptions"] = *req.MaxRedemptions
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(&offer).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update offer %d: %v", offer.ID, err)
		utils.InternalServerError(c, "Failed to update offer", nil)
		return
	}

	utils.LogInfo("Updated offer %d", offer.ID)
	utils.Success(c, "Offer updated successfully", offer)
}

// DeleteOffer soft-deletes an offer the acting admin manages
func DeleteOffer(c *gin.Context) {
	utils.LogInfo("DeleteOffer called")

	_, offer, ok := loadScopedOffer(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(&offer).Error; err != nil {
		utils.LogError("Failed to delete offer %d: %v", offer.ID, err)
		utils.InternalServerError(c, "Failed to delete offer", nil)
		return
	}

	utils.LogInfo("Deleted offer %d", offer.ID)
	utils.Success(c, "Offer deleted successfully", nil)
}

// loadScopedOffer resolves :id, loads the offer, and enforces company access.
// It writes the error response itself when ok is false.
func loadScopedOffer(c *gin.Context) (models.AdminUser, models.Offer, bool) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		utils.Unauthorized(c, "Admin not found")
		return models.AdminUser{}, models.Offer{}, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid offer ID", nil)
		return admin, models.Offer{}, false
	}

	var offer models.Offer
	if err := config.DB.Preload("Company").First(&offer, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Offer not found")
			return admin, models.Offer{}, false
		}
		utils.InternalServerError(c, "Failed to fetch offer", nil)
		return admin, models.Offer{}, false
	}

	if !admin.CanAccessCompany(offer.CompanyID) {
		utils.LogError("Admin %d denied access to offer %d", admin.ID, offer.ID)
		utils.Forbidden(c, "You do not manage this company")
		return admin, models.Offer{}, false
	}

	return admin, offer, true
}
