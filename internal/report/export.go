package report

import (
	"fmt"
	"log"
	"time"

	"ciftlik-backend/internal/finance"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/reports/export/xlsx
// Rapor listesini tek sayfalık Excel dosyası olarak indirir
func ExportReportsXLSXHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reports, err := ListReports()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raporlar listelenemedi")
		}

		f := excelize.NewFile()
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("Excel dosyası kapatılamadı: %v", err)
			}
		}()

		const sheet = "Raporlar"
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel sayfası oluşturulamadı")
		}

		headers := []string{"ID", "Çiftçi", "Ürün", "Sezon", "Konum", "Dönüm",
			"Toplam Gelir", "Toplam Gider", "Net Kar/Zarar", "Dönüm Başı Maliyet", "Oluşturma"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, r := range reports {
			summary, err := finance.Compute(r.IncomeItems, r.ExpenseItems, r.TotalAcres)
			if err != nil {
				summary = finance.Summary{}
			}

			values := []any{
				r.ID, r.FarmerName, r.CropName, r.Season, r.Location, r.TotalAcres,
				summary.TotalIncome, summary.TotalExpense, summary.Net, summary.CostPerAcre,
				r.CreatedAt.Format("2006-01-02 15:04"),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası üretilemedi")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="raporlar_%s.xlsx"`, time.Now().Format("20060102")))
		return c.Send(buf.Bytes())
	}
}
