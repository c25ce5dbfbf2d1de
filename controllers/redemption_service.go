package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// offerLocks serializes the count-check-and-insert sequence per offer for all
// in-process callers. Without it two concurrent redemptions against an offer
// with one remaining slot could both pass the count check.
var offerLocks = utils.NewKeyedMutex()

// RedeemResult carries the outcome of a successful redemption
type RedeemResult struct {
	RedemptionID          uint
	Offer                 models.Offer
	TotalForOffer         int64
	TotalForEmailAndOffer int64
}

// ProcessRedemption validates eligibility for an offer and records a
// redemption. The offer is addressed by slug, or by code when byCode is set.
//
// The cap check and the insert run under a per-offer lock and inside a single
// transaction that takes a row lock on the offer (postgres), so at most
// MaxRedemptions rows can ever exist for an offer.
func ProcessRedemption(offerKey, rawEmail string, byCode bool) (*RedeemResult, *utils.AppError) {
	key := strings.TrimSpace(offerKey)
	if key == "" {
		return nil, utils.ValidationError("offer is required")
	}

	email := utils.NormalizeEmail(rawEmail)
	if valid, msg := utils.ValidateEmail(email); !valid {
		return nil, utils.ValidationError(msg)
	}

	var offer models.Offer
	var err error
	if byCode {
		err = config.DB.Where("code = ?", strings.ToUpper(key)).First(&offer).Error
	} else {
		err = config.DB.Where("slug = ?", strings.ToLower(key)).First(&offer).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("offer not found")
		}
		return nil, utils.InternalError(err)
	}

	lockKey := lockKeyForOffer(offer.ID)
	offerLocks.Lock(lockKey)
	defer offerLocks.Unlock(lockKey)

	tx := config.DB.Begin()
	if tx.Error != nil {
		return nil, utils.InternalError(tx.Error)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	// Re-read under the transaction; on postgres the row lock also serializes
	// redeems across instances.
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&offer, offer.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("offer not found")
		}
		return nil, utils.InternalError(err)
	}

	if !offer.Active {
		return nil, utils.InvalidStateError("offer is inactive")
	}

	now := time.Now()
	if offer.ValidFrom != nil && now.Before(*offer.ValidFrom) {
		return nil, utils.InvalidStateError("offer is not yet valid")
	}
	if offer.ValidUntil != nil && now.After(*offer.ValidUntil) {
		return nil, utils.InvalidStateError("offer has expired")
	}

	var totalForOffer int64
	if err := tx.Model(&models.Redemption{}).Where("offer_id = ?", offer.ID).Count(&totalForOffer).Error; err != nil {
		return nil, utils.InternalError(err)
	}
	if totalForOffer >= int64(offer.MaxRedemptions) {
		return nil, utils.LimitReachedError("offer redemption limit reached")
	}

	redemption := models.Redemption{
		OfferID: offer.ID,
		Email:   email,
	}
	if err := tx.Create(&redemption).Error; err != nil {
		return nil, utils.InternalError(err)
	}

	// Re-queried post-insert; used for user-facing messaging only
	var totalForEmailAndOffer int64
	if err := tx.Model(&models.Redemption{}).
		Where("offer_id = ? AND email = ?", offer.ID, email).
		Count(&totalForEmailAndOffer).Error; err != nil {
		return nil, utils.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, utils.InternalError(err)
	}
	committed = true

	return &RedeemResult{
		RedemptionID:          redemption.ID,
		Offer:                 offer,
		TotalForOffer:         totalForOffer + 1,
		TotalForEmailAndOffer: totalForEmailAndOffer,
	}, nil
}

func lockKeyForOffer(id uint) string {
	return "offer:" + strconv.FormatUint(uint64(id), 10)
}
