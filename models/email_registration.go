package models

import (
	"time"

	"gorm.io/gorm"
)

// EmailRegistration tracks a visitor email and its verification state.
// The token is single-use: it is nulled once the verification link is hit.
type EmailRegistration struct {
	gorm.Model
	Email              string     `json:"email" gorm:"uniqueIndex;not null"` // normalized lowercase
	Verified           bool       `json:"verified" gorm:"default:false"`
	VerificationToken  *string    `json:"-" gorm:"index"`
	VerificationSentAt *time.Time `json:"verification_sent_at"`
}
