package models

import (
	"time"

	"gorm.io/gorm"
)

// Offer represents a company-issued discount identified by a unique code.
// The slug is the public URL key and is generated from the code when not set.
// MaxRedemptions caps the total number of redemptions across all emails; the
// count of Redemption rows is the authoritative usage metric, no cached
// counter is kept.
type Offer struct {
	gorm.Model
	Code           string     `json:"code" gorm:"uniqueIndex;not null"`
	Slug           string     `json:"slug" gorm:"uniqueIndex;not null"`
	CompanyID      uint       `json:"company_id" gorm:"not null;index"`
	Company        Company    `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Description    string     `json:"description"`
	Active         bool       `json:"active" gorm:"default:true"`
	ValidFrom      *time.Time `json:"valid_from"`
	ValidUntil     *time.Time `json:"valid_until"`
	MaxRedemptions int        `json:"max_redemptions" gorm:"not null"`
}
