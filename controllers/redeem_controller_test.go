package controllers_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemOfferBySlug(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	utils.CreateTestOffer(t, company.ID, "SAVE10", 5)

	w := httpDo(r, "POST", "/api/offers/save10/redeem", map[string]string{
		"email": "alice@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["redemptionId"])

	offer := body["offer"].(map[string]interface{})
	assert.Equal(t, "SAVE10", offer["code"])
	assert.Equal(t, "save10", offer["slug"])

	counts := body["counts"].(map[string]interface{})
	assert.Equal(t, float64(1), counts["totalForOffer"])
	assert.Equal(t, float64(1), counts["totalForEmailAndOffer"])
}

func TestRedeemOfferByCode(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	utils.CreateTestOffer(t, company.ID, "SAVE10", 5)

	// Code lookup is case-insensitive
	w := httpDo(r, "POST", "/api/offers/redeem", map[string]string{
		"code":  "save10",
		"email": "alice@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	config.DB.Model(&models.Redemption{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRedeemUnknownOffer(t *testing.T) {
	r := setupRouter(t)

	w := httpDo(r, "POST", "/api/offers/no-such-offer/redeem", map[string]string{
		"email": "alice@example.com",
	}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "offer not found", decodeBody(t, w)["error"])

	var count int64
	config.DB.Model(&models.Redemption{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRedeemInvalidEmail(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	utils.CreateTestOffer(t, company.ID, "SAVE10", 5)

	for _, email := range []string{"", "not-an-email", "a@b"} {
		w := httpDo(r, "POST", "/api/offers/save10/redeem", map[string]string{
			"email": email,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "email %q", email)
	}

	var count int64
	config.DB.Model(&models.Redemption{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRedeemNormalizesEmail(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	utils.CreateTestOffer(t, company.ID, "SAVE10", 5)

	w := httpDo(r, "POST", "/api/offers/save10/redeem", map[string]string{
		"email": "  Alice@Example.COM ",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httpDo(r, "POST", "/api/offers/save10/redeem", map[string]string{
		"email": "alice@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	counts := decodeBody(t, w)["counts"].(map[string]interface{})
	assert.Equal(t, float64(2), counts["totalForEmailAndOffer"])

	var reds []models.Redemption
	config.DB.Find(&reds)
	require.Len(t, reds, 2)
	for _, red := range reds {
		assert.Equal(t, "alice@example.com", red.Email)
	}
}

func TestRedeemInactiveOffer(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	offer := utils.CreateTestOffer(t, company.ID, "SAVE10", 5)
	require.NoError(t, config.DB.Model(offer).Update("active", false).Error)

	w := httpDo(r, "POST", "/api/offers/save10/redeem", map[string]string{
		"email": "alice@example.com",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "offer is inactive", decodeBody(t, w)["error"])
}

func TestRedeemOutsideValidityWindow(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")

	notYet := utils.CreateTestOffer(t, company.ID, "SOON", 5)
	require.NoError(t, config.DB.Model(notYet).
		Update("valid_from", time.Now().Add(24*time.Hour)).Error)

	expired := utils.CreateTestOffer(t, company.ID, "GONE", 5)
	require.NoError(t, config.DB.Model(expired).
		Update("valid_until", time.Now().Add(-24*time.Hour)).Error)

	w := httpDo(r, "POST", "/api/offers/soon/redeem", map[string]string{
		"email": "alice@example.com",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "offer is not yet valid", decodeBody(t, w)["error"])

	w = httpDo(r, "POST", "/api/offers/gone/redeem", map[string]string{
		"email": "alice@example.com",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "offer has expired", decodeBody(t, w)["error"])

	var count int64
	config.DB.Model(&models.Redemption{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRedeemCapEnforced(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	offer := utils.CreateTestOffer(t, company.ID, "CAP3", 3)

	for i := 0; i < 3; i++ {
		w := httpDo(r, "POST", "/api/offers/cap3/redeem", map[string]string{
			"email": fmt.Sprintf("user%d@example.com", i),
		}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := httpDo(r, "POST", "/api/offers/cap3/redeem", map[string]string{
		"email": "late@example.com",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "offer redemption limit reached", decodeBody(t, w)["error"])

	var count int64
	config.DB.Model(&models.Redemption{}).Where("offer_id = ?", offer.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

// The cap must hold even when requests for the same offer land at once.
func TestRedeemCapUnderConcurrency(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	offer := utils.CreateTestOffer(t, company.ID, "RACE", 3)

	const attempts = 10
	codes := make([]int, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httpDo(r, "POST", "/api/offers/race/redeem", map[string]string{
				"email": fmt.Sprintf("racer%d@example.com", i),
			}, nil)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	ok, limited := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusBadRequest:
			limited++
		default:
			t.Fatalf("Unexpected status %d", code)
		}
	}
	assert.Equal(t, 3, ok)
	assert.Equal(t, attempts-3, limited)

	var count int64
	config.DB.Model(&models.Redemption{}).Where("offer_id = ?", offer.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestRedeemSingleSlotOffer(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	utils.CreateTestOffer(t, company.ID, "SAVE10", 1)

	w := httpDo(r, "POST", "/api/offers/save10/redeem", map[string]string{
		"email": "alice@x.com",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	counts := decodeBody(t, w)["counts"].(map[string]interface{})
	assert.Equal(t, float64(1), counts["totalForOffer"])
	assert.Equal(t, float64(1), counts["totalForEmailAndOffer"])

	w = httpDo(r, "POST", "/api/offers/save10/redeem", map[string]string{
		"email": "bob@x.com",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "offer redemption limit reached", decodeBody(t, w)["error"])
}

func TestRedeemCountsArePerOffer(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	utils.CreateTestOffer(t, company.ID, "FIRST", 5)
	utils.CreateTestOffer(t, company.ID, "SECOND", 5)

	w := httpDo(r, "POST", "/api/offers/first/redeem", map[string]string{
		"email": "alice@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httpDo(r, "POST", "/api/offers/second/redeem", map[string]string{
		"email": "alice@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	counts := decodeBody(t, w)["counts"].(map[string]interface{})
	assert.Equal(t, float64(1), counts["totalForOffer"])
	assert.Equal(t, float64(1), counts["totalForEmailAndOffer"])
}
