package controllers

import (
	"errors"
	"strconv"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateAdminRequest represents the request body for creating an admin user
type CreateAdminRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"omitempty,oneof=admin superadmin"`
	CompanyIDs []uint `json:"company_ids"`
}

// AssignCompaniesRequest represents the body for replacing an admin's
// company assignments
type AssignCompaniesRequest struct {
	CompanyIDs []uint `json:"company_ids" binding:"required"`
}

// CreateAdminUser creates an admin account. Superadmin only (route-enforced).
func CreateAdminUser(c *gin.Context) {
	utils.LogInfo("CreateAdminUser called")

	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid admin user request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	email := utils.NormalizeEmail(req.Email)
	var existing models.AdminUser
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Conflict(c, "Admin email already exists", nil)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}

	var companies []models.Company
	if len(req.CompanyIDs) > 0 {
		if err := config.DB.Find(&companies, req.CompanyIDs).Error; err != nil {
			utils.InternalServerError(c, "Failed to fetch companies", nil)
			return
		}
		if len(companies) != len(req.CompanyIDs) {
			utils.BadRequest(c, "One or more companies do not exist", nil)
			return
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to process password", nil)
		return
	}

	admin := models.AdminUser{
		Email:     email,
		Password:  hash,
		Role:      role,
		IsActive:  true,
		Companies: companies,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		utils.LogError("Failed to create admin user: %v", err)
		utils.InternalServerError(c, "Failed to create admin user", nil)
		return
	}

	utils.LogInfo("Created admin user %d (%s)", admin.ID, admin.Email)
	utils.Created(c, "Admin user created successfully", gin.H{
		"id":        admin.ID,
		"email":     admin.Email,
		"role":      admin.Role,
		"companies": admin.Companies,
	})
}

// ListAdminUsers lists all admin accounts. Superadmin only (route-enforced).
func ListAdminUsers(c *gin.Context) {
	utils.LogInfo("ListAdminUsers called")

	var admins []models.AdminUser
	if err := config.DB.Preload("Companies").Order("email").Find(&admins).Error; err != nil {
		utils.LogError("Failed to fetch admin users: %v", err)
		utils.InternalServerError(c, "Failed to fetch admin users", nil)
		return
	}

	utils.Success(c, "Admin users fetched successfully", admins)
}

// AssignAdminCompanies replaces an admin's company assignments. Superadmin
// only (route-enforced).
func AssignAdminCompanies(c *gin.Context) {
	utils.LogInfo("AssignAdminCompanies called")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid admin ID", nil)
		return
	}

	var req AssignCompaniesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var admin models.AdminUser
	if err := config.DB.First(&admin, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Admin user not found")
			return
		}
		utils.InternalServerError(c, "Failed to fetch admin user", nil)
		return
	}

	var companies []models.Company
	if len(req.CompanyIDs) > 0 {
		if err := config.DB.Find(&companies, req.CompanyIDs).Error; err != nil {
			utils.InternalServerError(c, "Failed to fetch companies", nil)
			return
		}
		if len(companies) != len(req.CompanyIDs) {
			utils.BadRequest(c, "One or more companies do not exist", nil)
			return
		}
	}

	if err := config.DB.Model(&admin).Association("Companies").Replace(companies); err != nil {
		utils.LogError("Failed to assign companies for admin %d: %v", admin.ID, err)
		utils.InternalServerError(c, "Failed to assign companies", nil)
		return
	}

	utils.LogInfo("Replaced company assignments for admin %d", admin.ID)
	utils.Success(c, "Companies assigned successfully", gin.H{
		"id":        admin.ID,
		"companies": companies,
	})
}
