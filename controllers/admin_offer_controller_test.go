package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOffer(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	utils.CreateTestAdmin(t, "admin@egmrc.com", "s3cret", models.RoleAdmin, *company)
	headers := adminLogin(t, r, "admin@egmrc.com", "s3cret")

	w := httpDo(r, "POST", "/v1/admin/offers", map[string]interface{}{
		"code":            "summer sale 20",
		"company_id":      company.ID,
		"description":     "20% off everything",
		"max_redemptions": 100,
	}, headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var offer models.Offer
	require.NoError(t, config.DB.Where("company_id = ?", company.ID).First(&offer).Error)
	assert.Equal(t, "SUMMER SALE 20", offer.Code)
	assert.Equal(t, "summer-sale-20", offer.Slug)
	assert.True(t, offer.Active)
	assert.Equal(t, 100, offer.MaxRedemptions)
}

func TestCreateOfferValidation(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	utils.CreateTestAdmin(t, "admin@egmrc.com", "s3cret", models.RoleAdmin, *company)
	headers := adminLogin(t, r, "admin@egmrc.com", "s3cret")

	// Missing code
	w := httpDo(r, "POST", "/v1/admin/offers", map[string]interface{}{
		"company_id":      company.ID,
		"max_redemptions": 10,
	}, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Zero cap
	w = httpDo(r, "POST", "/v1/admin/offers", map[string]interface{}{
		"code":            "SAVE10",
		"company_id":      company.ID,
		"max_redemptions": 0,
	}, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOfferDuplicateCode(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	utils.CreateTestOffer(t, company.ID, "SAVE10", 5)
	utils.CreateTestAdmin(t, "admin@egmrc.com", "s3cret", models.RoleAdmin, *company)
	headers := adminLogin(t, r, "admin@egmrc.com", "s3cret")

	// Same code, different case
	w := httpDo(r, "POST", "/v1/admin/offers", map[string]interface{}{
		"code":            "save10",
		"company_id":      company.ID,
		"max_redemptions": 5,
	}, headers)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateOfferForeignCompanyForbidden(t *testing.T) {
	r := setupRouter(t)
	mine := utils.CreateTestCompany(t, "Acme Retail")
	other := utils.CreateTestCompany(t, "Rival Corp")
	utils.CreateTestAdmin(t, "admin@egmrc.com", "s3cret", models.RoleAdmin, *mine)
	headers := adminLogin(t, r, "admin@egmrc.com", "s3cret")

	w := httpDo(r, "POST", "/v1/admin/offers", map[string]interface{}{
		"code":            "SAVE10",
		"company_id":      other.ID,
		"max_redemptions": 5,
	}, headers)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListOffersScoped(t *testing.T) {
	r := setupRouter(t)
	mine := utils.CreateTestCompany(t, "Acme Retail")
	other := utils.CreateTestCompany(t, "Rival Corp")
	utils.CreateTestOffer(t, mine.ID, "MINE1", 5)
	utils.CreateTestOffer(t, mine.ID, "MINE2", 5)
	utils.CreateTestOffer(t, other.ID, "THEIRS", 5)

	utils.CreateTestAdmin(t, "admin@egmrc.com", "s3cret", models.RoleAdmin, *mine)
	utils.CreateTestAdmin(t, "root@egmrc.com", "s3cret", models.RoleSuperAdmin)

	headers := adminLogin(t, r, "admin@egmrc.com", "s3cret")
	w := httpDo(r, "GET", "/v1/admin/offers", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["data"].([]interface{}), 2)
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["total"])

	// Superadmins see every company
	headers = adminLogin(t, r, "root@egmrc.com", "s3cret")
	w = httpDo(r, "GET", "/v1/admin/offers", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["data"].([]interface{}), 3)
}

func TestGetOfferWithRedemptionCount(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	offer := utils.CreateTestOffer(t, company.ID, "SAVE10", 5)
	utils.CreateTestAdmin(t, "admin@egmrc.com", "s3cret", models.RoleAdmin, *company)
	headers := adminLogin(t, r, "admin@egmrc.com", "s3cret")

	for i := 0; i < 2; i++ {
		w := httpDo(r, "POST", "/api/offers/save10/redeem", map[string]string{
			"email": fmt.Sprintf("user%d@example.com", i),
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httpDo(r, "GET", fmt.Sprintf("/v1/admin/offers/%d", offer.ID), nil, headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["redemption_count"])
}

func TestGetOfferForeignCompanyForbidden(t *testing.T) {
	r := setupRouter(t)
	mine := utils.CreateTestCompany(t, "Acme Retail")
	other := utils.CreateTestCompany(t, "Rival Corp")
	theirs := utils.CreateTestOffer(t, other.ID, "THEIRS", 5)
	utils.CreateTestAdmin(t, "admin@egmrc.com", "s3cret", models.RoleAdmin, *mine)
	headers := adminLogin(t, r, "admin@egmrc.com", "s3cret")

	w := httpDo(r, "GET", fmt.Sprintf("/v1/admin/offers/%d", theirs.ID), nil, headers)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateOffer(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	offer := utils.CreateTestOffer(t, company.ID, "SAVE10", 5)
	utils.CreateTestAdmin(t, "admin@egmrc.com", "s3cret", models.RoleAdmin, *company)
	headers := adminLogin(t, r, "admin@egmrc.com", "s3cret")

	w := httpDo(r, "PUT", fmt.Sprintf("/v1/admin/offers/%d", offer.ID), map[string]interface{}{
		"active":          false,
		"max_redemptions": 50,
	}, headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Offer
	require.NoError(t, config.DB.First(&updated, offer.ID).Error)
	assert.False(t, updated.Active)
	assert.Equal(t, 50, updated.MaxRedemptions)
	assert.Equal(t, "SAVE10", updated.Code)

	// Cap below 1 is rejected
	w = httpDo(r, "PUT", fmt.Sprintf("/v1/admin/offers/%d", offer.ID), map[string]interface{}{
		"max_redemptions": 0,
	}, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Empty update is rejected
	w = httpDo(r, "PUT", fmt.Sprintf("/v1/admin/offers/%d", offer.ID), map[string]interface{}{}, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOffer(t *testing.T) {
	r := setupRouter(t)
	company := utils.CreateTestCompany(t, "Acme Retail")
	offer := utils.CreateTestOffer(t, company.ID, "SAVE10", 5)
	utils.CreateTestAdmin(t, "admin@egmrc.com", "s3cret", models.RoleAdmin, *company)
	headers := adminLogin(t, r, "admin@egmrc.com", "s3cret")

	w := httpDo(r, "DELETE", fmt.Sprintf("/v1/admin/offers/%d", offer.ID), nil, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "GET", fmt.Sprintf("/v1/admin/offers/%d", offer.ID), nil, headers)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deleted offers disappear from the public surface too
	w = httpDo(r, "GET", "/api/offers/save10", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCompanyManagement(t *testing.T) {
	r := setupRouter(t)
	utils.CreateTestAdmin(t, "root@egmrc.com", "s3cret", models.RoleSuperAdmin)
	headers := adminLogin(t, r, "root@egmrc.com", "s3cret")

	w := httpDo(r, "POST", "/v1/admin/companies", map[string]string{"name": "Acme Retail"}, headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Duplicate name
	w = httpDo(r, "POST", "/v1/admin/companies", map[string]string{"name": "Acme Retail"}, headers)
	assert.Equal(t, http.StatusConflict, w.Code)

	var company models.Company
	require.NoError(t, config.DB.Where("name = ?", "Acme Retail").First(&company).Error)

	w = httpDo(r, "PUT", fmt.Sprintf("/v1/admin/companies/%d", company.ID), map[string]string{"name": "Acme Holdings"}, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "GET", "/v1/admin/companies", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	companies := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme Holdings", companies[0].(map[string]interface{})["name"])

	w = httpDo(r, "DELETE", fmt.Sprintf("/v1/admin/companies/%d", company.ID), nil, headers)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	config.DB.Model(&models.Company{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestListCompaniesScoped(t *testing.T) {
	r := setupRouter(t)
	mine := utils.CreateTestCompany(t, "Acme Retail")
	utils.CreateTestCompany(t, "Rival Corp")
	utils.CreateTestAdmin(t, "admin@egmrc.com", "s3cret", models.RoleAdmin, *mine)
	headers := adminLogin(t, r, "admin@egmrc.com", "s3cret")

	w := httpDo(r, "GET", "/v1/admin/companies", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	companies := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme Retail", companies[0].(map[string]interface{})["name"])
}
