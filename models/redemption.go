package models

import "time"

// Redemption is an immutable record of one successful use of an offer by one
// email address. Rows are never updated or deleted in the normal flow.
type Redemption struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OfferID   uint      `json:"offer_id" gorm:"not null;index"`
	Offer     Offer     `json:"offer,omitempty" gorm:"foreignKey:OfferID"`
	Email     string    `json:"email" gorm:"not null;index"` // normalized lowercase
	CreatedAt time.Time `json:"created_at"`
}
