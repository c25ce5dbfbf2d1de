package controllers

import (
	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-gonic/gin"
)

// ListEmailRegistrations lists visitor email registrations. Superadmin only
// (enforced at the route): registrations belong to no company, so company
// admins have no claim on them.
func ListEmailRegistrations(c *gin.Context) {
	utils.LogInfo("ListEmailRegistrations called")

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.EmailRegistration{})
	if verified := c.Query("verified"); verified != "" {
		query = query.Where("verified = ?", verified == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count email registrations: %v", err)
		utils.InternalServerError(c, "Failed to fetch email registrations", nil)
		return
	}
	pagination.SetTotal(total)

	var registrations []models.EmailRegistration
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&registrations).Error; err != nil {
		utils.LogError("Failed to fetch email registrations: %v", err)
		utils.InternalServerError(c, "Failed to fetch email registrations", nil)
		return
	}

	utils.SendPaginatedResponse(c, "Email registrations fetched successfully", registrations, pagination)
}
