package controllers

import (
	"errors"
	"os"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"gorm.io/gorm"
)

// EnsureSuperAdmin creates the bootstrap superadmin from SUPERADMIN_EMAIL and
// SUPERADMIN_PASSWORD if no account exists for that email yet.
func EnsureSuperAdmin() error {
	email := utils.NormalizeEmail(os.Getenv("SUPERADMIN_EMAIL"))
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("SUPERADMIN_EMAIL/SUPERADMIN_PASSWORD not set, skipping bootstrap")
		return nil
	}

	var existing models.AdminUser
	err := config.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.AdminUser{
		Email:    email,
		Password: hash,
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}

	utils.LogInfo("Bootstrap superadmin created: %s", email)
	return nil
}
