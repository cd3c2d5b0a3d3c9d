package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ciftlik-backend/internal/config"
	"ciftlik-backend/internal/finance"
	"ciftlik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LineItemResponse struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type ReportResponse struct {
	ID              uint               `json:"id"`
	FarmerName      string             `json:"farmer_name"`
	CropName        string             `json:"crop_name"`
	Season          string             `json:"season"`
	Location        string             `json:"location"`
	TotalAcres      float64            `json:"total_acres"`
	TotalProduction float64            `json:"total_production"`
	SowingDate      string             `json:"sowing_date"`
	HarvestDate     string             `json:"harvest_date"`
	Incomes         []LineItemResponse `json:"incomes"`
	Expenses        []LineItemResponse `json:"expenses"`
	Metrics         finance.Summary    `json:"metrics"`
	PDFFilename     string             `json:"pdf_filename"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
}

// Özet liste görünümü; kalemler olmadan
type ReportSummaryResponse struct {
	ID          uint            `json:"id"`
	FarmerName  string          `json:"farmer_name"`
	CropName    string          `json:"crop_name"`
	Season      string          `json:"season"`
	TotalAcres  float64         `json:"total_acres"`
	Metrics     finance.Summary `json:"metrics"`
	PDFFilename string          `json:"pdf_filename"`
	CreatedAt   string          `json:"created_at"`
}

// Türetilmiş metrikler response üretilirken HER SEFERİNDE yeniden hesaplanır;
// saklanan bir kopya yoktur, drift olamaz.
func toReportResponse(r *models.Report) (ReportResponse, error) {
	summary, err := finance.Compute(r.IncomeItems, r.ExpenseItems, r.TotalAcres)
	if err != nil {
		return ReportResponse{}, err
	}

	incomes := make([]LineItemResponse, 0, len(r.IncomeItems))
	for _, it := range r.IncomeItems {
		incomes = append(incomes, LineItemResponse{it.Category, it.Amount, it.Date, it.Description})
	}
	expenses := make([]LineItemResponse, 0, len(r.ExpenseItems))
	for _, it := range r.ExpenseItems {
		expenses = append(expenses, LineItemResponse{it.Category, it.Amount, it.Date, it.Description})
	}

	return ReportResponse{
		ID:              r.ID,
		FarmerName:      r.FarmerName,
		CropName:        r.CropName,
		Season:          r.Season,
		Location:        r.Location,
		TotalAcres:      r.TotalAcres,
		TotalProduction: r.TotalProduction,
		SowingDate:      r.SowingDate,
		HarvestDate:     r.HarvestDate,
		Incomes:         incomes,
		Expenses:        expenses,
		Metrics:         summary,
		PDFFilename:     r.PDFFilename,
		CreatedAt:       r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	// ParseUint "12abc" gibi artık karakterli değerleri reddeder
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
	}
	return uint(id), nil
}

// Servis hatalarını HTTP durum kodlarına çevirir
func mapServiceError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Doğrulama hatası",
			"fields": verr.Fields,
		})
	case errors.Is(err, finance.ErrInvalidLandArea), errors.Is(err, finance.ErrNegativeAmount):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Rapor bulunamadı")
	case errors.Is(err, ErrRenderFailure):
		return fiber.NewError(fiber.StatusInternalServerError, "Rapor belgesi üretilemedi (kayıt saklandı)")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Beklenmeyen sunucu hatası")
	}
}

// POST /api/reports
func CreateReportHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ReportPayload
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		_, r, err := Submit(cfg, &body)
		if err != nil {
			return mapServiceError(c, err)
		}

		res, err := toReportResponse(r)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/reports/:id
func UpdateReportHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body ReportPayload
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		_, r, err := Edit(cfg, id, &body)
		if err != nil {
			return mapServiceError(c, err)
		}

		res, err := toReportResponse(r)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GET /api/reports
func ListReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reports, err := ListReports()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raporlar listelenemedi")
		}

		res := make([]ReportSummaryResponse, 0, len(reports))
		for i := range reports {
			r := &reports[i]
			summary, err := finance.Compute(r.IncomeItems, r.ExpenseItems, r.TotalAcres)
			if err != nil {
				// Eski bozuk kayıt listeyi düşürmesin
				summary = finance.Summary{}
			}
			res = append(res, ReportSummaryResponse{
				ID:          r.ID,
				FarmerName:  r.FarmerName,
				CropName:    r.CropName,
				Season:      r.Season,
				TotalAcres:  r.TotalAcres,
				Metrics:     summary,
				PDFFilename: r.PDFFilename,
				CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}

// GET /api/reports/:id
func GetReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		r, err := GetReport(id)
		if err != nil {
			return mapServiceError(c, err)
		}

		res, err := toReportResponse(r)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GET /api/reports/:id/pdf
// Diskteki artifact'ı döndürür; dosya kaybolmuşsa kayıttan yeniden üretir
func GetReportPDFHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		r, err := GetReport(id)
		if err != nil {
			return mapServiceError(c, err)
		}

		if r.PDFFilename != "" {
			path := filepath.Join(cfg.ReportsDir, r.PDFFilename)
			if data, err := os.ReadFile(path); err == nil {
				c.Set(fiber.HeaderContentType, "application/pdf")
				c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, r.PDFFilename))
				return c.Send(data)
			}
		}

		pdfBytes, r, err := RegeneratePDF(cfg, id)
		if err != nil {
			return mapServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, r.PDFFilename))
		return c.Send(pdfBytes)
	}
}

// DELETE /api/reports/:id
func DeleteReportHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		if err := Remove(cfg, id); err != nil {
			return mapServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /reports/:filename
// Üretilmiş PDF dosyasını adıyla indirir (eski arayüz bu yolu kullanıyor)
func DownloadReportFileHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename := c.Params("filename")

		// Path traversal engeli
		if filename == "" || filename != filepath.Base(filename) {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya adı geçersiz")
		}

		path := filepath.Join(cfg.ReportsDir, filename)
		if _, err := os.Stat(path); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dosya bulunamadı")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.SendFile(path)
	}
}
