package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB points config.DB at a per-test in-memory database so tests do
// not interfere with each other. A single connection keeps sqlite happy under
// concurrent handlers.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.MigrateDB(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.DB = db
	return db
}

// CreateTestCompany creates a test company
func CreateTestCompany(t *testing.T, name string) *models.Company {
	t.Helper()
	company := &models.Company{Name: name}
	if err := config.DB.Create(company).Error; err != nil {
		t.Fatalf("Failed to create test company: %v", err)
	}
	return company
}

// CreateTestOffer creates an active test offer for the given company
func CreateTestOffer(t *testing.T, companyID uint, code string, maxRedemptions int) *models.Offer {
	t.Helper()
	offer := &models.Offer{
		Code:           code,
		Slug:           Slugify(code),
		CompanyID:      companyID,
		Active:         true,
		MaxRedemptions: maxRedemptions,
	}
	if err := config.DB.Create(offer).Error; err != nil {
		t.Fatalf("Failed to create test offer: %v", err)
	}
	return offer
}

// CreateTestAdmin creates a test admin with the given role and companies
func CreateTestAdmin(t *testing.T, email, password, role string, companies ...models.Company) *models.AdminUser {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	admin := &models.AdminUser{
		Email:     email,
		Password:  hash,
		Role:      role,
		IsActive:  true,
		Companies: companies,
	}
	if err := config.DB.Create(admin).Error; err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return admin
}

// CreateTestRegistration creates an email registration, optionally verified
func CreateTestRegistration(t *testing.T, email string, verified bool) *models.EmailRegistration {
	t.Helper()
	reg := &models.EmailRegistration{
		Email:    NormalizeEmail(email),
		Verified: verified,
	}
	if err := config.DB.Create(reg).Error; err != nil {
		t.Fatalf("Failed to create test registration: %v", err)
	}
	return reg
}

// TimePtr returns a pointer to the given time, for offer validity windows
func TimePtr(ts time.Time) *time.Time {
	return &ts
}
