package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin roles
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Company represents a business that issues offers
type Company struct {
	gorm.Model
	Name   string  `json:"name" gorm:"uniqueIndex;not null"`
	Offers []Offer `json:"offers,omitempty" gorm:"foreignKey:CompanyID"`
}

// AdminUser represents an administrator in the system. Regular admins only
// see rows belonging to their assigned companies; superadmins see everything.
type AdminUser struct {
	gorm.Model
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-"`
	Role        string    `json:"role" gorm:"default:'admin'"`
	GoogleID    string    `json:"google_id,omitempty" gorm:"default:null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	LastLoginAt time.Time `json:"last_login_at"`

	Companies []Company `json:"companies" gorm:"many2many:admin_companies;"`
}

// IsSuperAdmin reports whether the admin has the superadmin role.
func (a *AdminUser) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// CompanyIDs returns the set of company IDs this admin is assigned to.
func (a *AdminUser) CompanyIDs() []uint {
	ids := make([]uint, 0, len(a.Companies))
	for _, c := range a.Companies {
		ids = append(ids, c.ID)
	}
	return ids
}

// CanAccessCompany reports whether the admin may act on rows owned by the
// given company: superadmin, or the company is in the admin's assigned set.
func (a *AdminUser) CanAccessCompany(companyID uint) bool {
	if a.IsSuperAdmin() {
		return true
	}
	for _, c := range a.Companies {
		if c.ID == companyID {
			return true
		}
	}
	return false
}
