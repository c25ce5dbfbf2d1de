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

// CompanyRequest represents the create/update body for a company
type CompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCompany creates a new company. Superadmin only (enforced at the route).
func CreateCompany(c *gin.Context) {
	utils.LogInfo("CreateCompany called")

	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid company request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var existing models.Company
	if err := config.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.LogError("Company name already exists: %s", req.Name)
		utils.Conflict(c, "Company name already exists", nil)
		return
	}

	company := models.Company{Name: req.Name}
	if err := config.DB.Create(&company).Error; err != nil {
		utils.LogError("Failed to create company: %v", err)
		utils.InternalServerError(c, "Failed to create company", nil)
		return
	}

	utils.LogInfo("Created company %d (%s)", company.ID, company.Name)
	utils.Created(c, "Company created successfully", company)
}

// ListCompanies lists the companies the acting admin can see
func ListCompanies(c *gin.Context) {
	utils.LogInfo("ListCompanies called")

	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		utils.Unauthorized(c, "Admin not found")
		return
	}

	query := config.DB.Model(&models.Company{})
	if !admin.IsSuperAdmin() {
		query = query.Where("id IN ?", admin.CompanyIDs())
	}

	var companies []models.Company
	if err := query.Order("name").Find(&companies).Error; err != nil {
		utils.LogError("Failed to fetch companies: %v", err)
		utils.InternalServerError(c, "Failed to fetch companies", nil)
		return
	}

	utils.Success(c, "Companies fetched successfully", companies)
}

// UpdateCompany renames a company the acting admin is assigned to
func UpdateCompany(c *gin.Context) {
	utils.LogInfo("UpdateCompany called")

	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		utils.Unauthorized(c, "Admin not found")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid company ID", nil)
		return
	}

	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var company models.Company
	if err := config.DB.First(&company, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Company not found")
			return
		}
		utils.InternalServerError(c, "Failed to fetch company", nil)
		return
	}

	if !admin.CanAccessCompany(company.ID) {
		utils.LogError("Admin %d denied access to company %d", admin.ID, company.ID)
		utils.Forbidden(c, "You do not manage this company")
		return
	}

	if err := config.DB.Model(&company).Update("name", req.Name).Error; err != nil {
		utils.LogError("Failed to update company %d: %v", company.ID, err)
		utils.InternalServerError(c, "Failed to update company", nil)
		return
	}

	utils.LogInfo("Updated company %d", company.ID)
	utils.Success(c, "Company updated successfully", company)
}

// DeleteCompany removes a company. Superadmin only (enforced at the route).
func DeleteCompany(c *gin.Context) {
	utils.LogInfo("DeleteCompany called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid company ID", nil)
		return
	}

	var company models.Company
	if err := config.DB.First(&company, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Company not found")
			return
		}
		utils.InternalServerError(c, "Failed to fetch company", nil)
		return
	}

	if err := config.DB.Delete(&company).Error; err != nil {
		utils.LogError("Failed to delete company %d: %v", company.ID, err)
		utils.InternalServerError(c, "Failed to delete company", nil)
		return
	}

	utils.LogInfo("Deleted company %d", company.ID)
	utils.Success(c, "Company deleted successfully", nil)
}
