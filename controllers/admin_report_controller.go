package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/egmrc/impact-offers/config"
	"github.com/egmrc/impact-offers/middleware"
	"github.com/egmrc/impact-offers/models"
	"github.com/egmrc/impact-offers/utils"
)

type redemptionReport struct {
	Redemptions  []models.Redemption
	TotalRows    int
	UniqueEmails int
	UniqueOffers int
}

func buildRedemptionReport(c *gin.Context) (*redemptionReport, bool) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		utils.Unauthorized(c, "Admin not found")
		return nil, false
	}

	query := config.DB.Model(&models.Redemption{}).
		Joins("JOIN offers ON offers.id = redemptions.offer_id")
	if !admin.IsSuperAdmin() {
		query = query.Where("offers.company_id IN ?", admin.CompanyIDs())
	}
	if offerID := c.Query("offer_id"); offerID != "" {
		query = query.Where("redemptions.offer_id = ?", offerID)
	}

	var redemptions []models.Redemption
	if err := query.Preload("Offer").Preload("Offer.Company").
		Order("redemptions.created_at DESC").
		Find(&redemptions).Error; err != nil {
		utils.LogError("Failed to fetch redemptions for report: %v", err)
		utils.InternalServerError(c, "Failed to fetch redemptions", nil)
		return nil, false
	}

	emailSet := make(map[string]bool)
	offerSet := make(map[uint]bool)
	for _, r := range redemptions {
		emailSet[r.Email] = true
		offerSet[r.OfferID] = true
	}

	return &redemptionReport{
		Redemptions:  redemptions,
		TotalRows:    len(redemptions),
		UniqueEmails: len(emailSet),
		UniqueOffers: len(offerSet),
	}, true
}

// DownloadRedemptionReport exports the scoped redemption records as an Excel
// sheet or a PDF, selected by ?format=xlsx|pdf
func DownloadRedemptionReport(c *gin.Context) {
	utils.LogInfo("DownloadRedemptionReport called")

	format := c.DefaultQuery("format", "xlsx")
	switch format {
	case "xlsx":
		downloadRedemptionReportExcel(c)
	case "pdf":
		downloadRedemptionReportPDF(c)
	default:
		utils.BadRequest(c, "Invalid format", "Format must be xlsx or pdf")
	}
}

func downloadRedemptionReportExcel(c *gin.Context) {
	report, ok := buildRedemptionReport(c)
	if !ok {
		return
	}
	utils.LogDebug("Generating Excel report with %d rows", report.TotalRows)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Redemptions")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", nil)
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("IMPACT OFFERS - Redemption Report")
	dateRow := sheet.AddRow()
	dateRow.AddCell().SetString("Generated: " + time.Now().Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headers := []string{"ID", "Offer Code", "Company", "Email", "Redeemed At"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, r := range report.Redemptions {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(r.ID))
		row.AddCell().SetString(r.Offer.Code)
		row.AddCell().SetString(r.Offer.Company.Name)
		row.AddCell().SetString(r.Email)
		row.AddCell().SetString(r.CreatedAt.Format("2006-01-02 15:04"))
	}

	sheet.AddRow() // spacing
	summaryData := [][]string{
		{"Total Redemptions", fmt.Sprintf("%d", report.TotalRows)},
		{"Unique Emails", fmt.Sprintf("%d", report.UniqueEmails)},
		{"Offers Redeemed", fmt.Sprintf("%d", report.UniqueOffers)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=redemption_report.xlsx")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", nil)
		return
	}
	utils.LogInfo("Generated Excel redemption report with %d rows", report.TotalRows)
}

func downloadRedemptionReportPDF(c *gin.Context) {
	report, ok := buildRedemptionReport(c)
	if !ok {
		return
	}
	utils.LogDebug("Generating PDF report with %d rows", report.TotalRows)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "IMPACT OFFERS - Redemption Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(12)

	widths := []float64{20, 50, 60, 90, 45}
	headers := []string{"ID", "Offer Code", "Company", "Email", "Redeemed At"}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range report.Redemptions {
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", r.ID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, r.Offer.Code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, r.Offer.Company.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, r.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 7, r.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Total Redemptions: %d | Unique Emails: %d | Offers Redeemed: %d",
		report.TotalRows, report.UniqueEmails, report.UniqueOffers))

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=redemption_report.pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", nil)
		return
	}
	utils.LogInfo("Generated PDF redemption report with %d rows", report.TotalRows)
}
