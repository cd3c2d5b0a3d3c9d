package report

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ciftlik-backend/internal/audit"
	"ciftlik-backend/internal/chart"
	"ciftlik-backend/internal/config"
	"ciftlik-backend/internal/finance"
	"ciftlik-backend/internal/models"
	"ciftlik-backend/internal/pdf"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrRenderFailure: Grafik veya PDF üretimi başarısız. Kayıt bu noktada
// zaten commit edilmiş durumda ve geri alınmaz; çiftçinin verisi kaybolmaz.
var ErrRenderFailure = errors.New("rapor belgesi üretilemedi")

var validate = validator.New()

type LineItemPayload struct {
	Category    string  `json:"category" validate:"required"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type ReportPayload struct {
	FarmerName      string            `json:"farmer_name" validate:"required"`
	CropName        string            `json:"crop_name" validate:"required"`
	Season          string            `json:"season"`
	Location        string            `json:"location"`
	// total_acres <= 0 doğrulaması finance.Compute'ta (InvalidInput), burada değil
	TotalAcres      float64           `json:"total_acres"`
	TotalProduction float64           `json:"total_production"`
	SowingDate      string            `json:"sowing_date"`
	HarvestDate     string            `json:"harvest_date"`
	Incomes         []LineItemPayload `json:"incomes" validate:"dive"`
	Expenses        []LineItemPayload `json:"expenses" validate:"dive"`
}

// ValidationError: Eksik/geçersiz alan adlarını taşır, hiçbir şey kaydedilmeden
// çağırana döner.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "eksik veya geçersiz alanlar: " + strings.Join(e.Fields, ", ")
}

// ValidatePayload: Zorunlu alan kontrolü. Alan adları JSON isimleriyle raporlanır.
func ValidatePayload(p *ReportPayload) error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, jsonFieldName(fe))
			}
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// validator alan adını struct field olarak verir ("FarmerName"); API'de json
// adıyla ("farmer_name") raporlamak için namespace'ten çeviriyoruz
func jsonFieldName(fe validator.FieldError) string {
	switch fe.StructField() {
	case "FarmerName":
		return "farmer_name"
	case "CropName":
		return "crop_name"
	case "Category":
		// incomes[2].category gibi konumlu isim üret
		ns := fe.StructNamespace() // "ReportPayload.Incomes[2].Category"
		if i := strings.Index(ns, "Incomes["); i >= 0 {
			return "incomes" + ns[i+len("Incomes"):len(ns)-len(".Category")] + ".category"
		}
		if i := strings.Index(ns, "Expenses["); i >= 0 {
			return "expenses" + ns[i+len("Expenses"):len(ns)-len(".Category")] + ".category"
		}
		return "category"
	default:
		return strings.ToLower(fe.StructField())
	}
}

func buildItems(p *ReportPayload) ([]models.IncomeItem, []models.ExpenseItem) {
	incomes := make([]models.IncomeItem, 0, len(p.Incomes))
	for i, it := range p.Incomes {
		incomes = append(incomes, models.IncomeItem{
			Category:    strings.TrimSpace(it.Category),
			Amount:      it.Amount,
			Date:        it.Date,
			Description: it.Description,
			Position:    i + 1,
		})
	}
	expenses := make([]models.ExpenseItem, 0, len(p.Expenses))
	for i, it := range p.Expenses {
		expenses = append(expenses, models.ExpenseItem{
			Category:    strings.TrimSpace(it.Category),
			Amount:      it.Amount,
			Date:        it.Date,
			Description: it.Description,
			Position:    i + 1,
		})
	}
	return incomes, expenses
}

// Submit: Yeni rapor akışı. Doğrula → hesapla → kaydet → grafik → PDF.
// Hesaplama hatası (dönüm <= 0, negatif tutar) kayıttan ÖNCE yakalanır;
// render hatası kayıttan SONRA oluşur ve kaydı geri almaz.
func Submit(cfg *config.Config, p *ReportPayload) ([]byte, *models.Report, error) {
	if err := ValidatePayload(p); err != nil {
		return nil, nil, err
	}

	incomes, expenses := buildItems(p)

	// Kalıcılıktan önce metrik hesabı; InvalidInput burada döner
	summary, err := finance.Compute(incomes, expenses, p.TotalAcres)
	if err != nil {
		return nil, nil, err
	}

	r := &models.Report{
		FarmerName:      strings.TrimSpace(p.FarmerName),
		CropName:        strings.TrimSpace(p.CropName),
		Season:          p.Season,
		Location:        p.Location,
		TotalAcres:      p.TotalAcres,
		TotalProduction: p.TotalProduction,
		SowingDate:      p.SowingDate,
		HarvestDate:     p.HarvestDate,
		IncomeItems:     incomes,
		ExpenseItems:    expenses,
	}

	if err := CreateReport(r); err != nil {
		return nil, nil, fmt.Errorf("rapor kaydedilemedi: %w", err)
	}

	if err := audit.WriteLog(audit.LogOptions{
		EntityType:  audit.EntityReport,
		EntityID:    r.ID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("Rapor oluşturuldu: %s / %s", r.FarmerName, r.CropName),
		After:       r,
	}); err != nil {
		log.Printf("Audit log yazılamadı (devam ediliyor): %v", err)
	}

	pdfBytes, err := renderArtifact(cfg, r, summary)
	if err != nil {
		// Kayıt commit edildi, geri alınmıyor; çağıran 500 görür ama veri durur
		return nil, r, errors.Join(ErrRenderFailure, err)
	}

	return pdfBytes, r, nil
}

// Edit: Tam gövde değişimi, Submit ile aynı akış ama store'un update yolu.
func Edit(cfg *config.Config, id uint, p *ReportPayload) ([]byte, *models.Report, error) {
	if err := ValidatePayload(p); err != nil {
		return nil, nil, err
	}

	incomes, expenses := buildItems(p)

	summary, err := finance.Compute(incomes, expenses, p.TotalAcres)
	if err != nil {
		return nil, nil, err
	}

	before, err := GetReport(id)
	if err != nil {
		return nil, nil, err
	}

	header := models.Report{
		FarmerName:      strings.TrimSpace(p.FarmerName),
		CropName:        strings.TrimSpace(p.CropName),
		Season:          p.Season,
		Location:        p.Location,
		TotalAcres:      p.TotalAcres,
		TotalProduction: p.TotalProduction,
		SowingDate:      p.SowingDate,
		HarvestDate:     p.HarvestDate,
	}

	updated, err := UpdateReport(id, header, incomes, expenses)
	if err != nil {
		return nil, nil, err
	}

	if err := audit.WriteLog(audit.LogOptions{
		EntityType:  audit.EntityReport,
		EntityID:    id,
		Action:      models.AuditActionUpdate,
		Description: fmt.Sprintf("Rapor güncellendi: %s / %s", updated.FarmerName, updated.CropName),
		Before:      before,
		After:       updated,
	}); err != nil {
		log.Printf("Audit log yazılamadı (devam ediliyor): %v", err)
	}

	pdfBytes, err := renderArtifact(cfg, updated, summary)
	if err != nil {
		return nil, updated, errors.Join(ErrRenderFailure, err)
	}

	return pdfBytes, updated, nil
}

// Remove: Hard delete + audit kaydı (silinen verinin son hali logda durur).
func Remove(cfg *config.Config, id uint) error {
	existing, err := GetReport(id)
	if err != nil {
		return err
	}

	if err := DeleteReport(id); err != nil {
		return err
	}

	if err := audit.WriteLog(audit.LogOptions{
		EntityType:  audit.EntityReport,
		EntityID:    id,
		Action:      models.AuditActionDelete,
		Description: fmt.Sprintf("Rapor silindi: %s / %s", existing.FarmerName, existing.CropName),
		Before:      existing,
	}); err != nil {
		log.Printf("Audit log yazılamadı (devam ediliyor): %v", err)
	}

	// Disk üzerindeki artifact da kaldırılır, hata önemsiz
	if existing.PDFFilename != "" {
		_ = os.Remove(filepath.Join(cfg.ReportsDir, existing.PDFFilename))
	}

	return nil
}

// RegeneratePDF: Diskteki artifact kaybolmuşsa kayıttan yeniden üretir.
func RegeneratePDF(cfg *config.Config, id uint) ([]byte, *models.Report, error) {
	r, err := GetReport(id)
	if err != nil {
		return nil, nil, err
	}

	summary, err := finance.Compute(r.IncomeItems, r.ExpenseItems, r.TotalAcres)
	if err != nil {
		return nil, nil, err
	}

	pdfBytes, err := renderArtifact(cfg, r, summary)
	if err != nil {
		return nil, r, errors.Join(ErrRenderFailure, err)
	}
	return pdfBytes, r, nil
}

// renderArtifact: Grafik + PDF üretir, dosyayı rapor klasörüne yazar ve
// dosya adını kayda işler.
func renderArtifact(cfg *config.Config, r *models.Report, summary finance.Summary) ([]byte, error) {
	piePNG, err := chart.RenderSummaryPie(summary.TotalIncome, summary.TotalExpense)
	if err != nil {
		return nil, err
	}

	cats := make([]chart.CategoryAmount, 0, len(r.ExpenseItems))
	for _, it := range r.ExpenseItems {
		cats = append(cats, chart.CategoryAmount{Category: it.Category, Amount: it.Amount})
	}
	barsPNG, err := chart.RenderExpenseBars(cats)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := pdf.Build(r, summary, piePNG, barsPNG, cfg.LogoPath)
	if err != nil {
		return nil, err
	}

	filename := artifactFilename(r)
	path := filepath.Join(cfg.ReportsDir, filename)
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		return nil, fmt.Errorf("PDF dosyası yazılamadı: %w", err)
	}

	if err := SetReportPDF(r.ID, filename); err != nil {
		log.Printf("PDF dosya adı kayda işlenemedi: %v", err)
	}
	r.PDFFilename = filename

	return pdfBytes, nil
}

// Dosya adı: çiftçi + ürün + zaman damgası + kısa uuid. ASCII dışı
// karakterler atılır, dosya sistemi güvenliği için.
// Örn: "Ahmet_Ylmaz_Buday_20250831_141502_a1b2c3d4.pdf"
func artifactFilename(r *models.Report) string {
	clean := func(s string) string {
		s = strings.ReplaceAll(s, " ", "_")
		var b strings.Builder
		for _, ch := range s {
			switch {
			case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '_', ch == '-':
				b.WriteRune(ch)
			}
		}
		if b.Len() == 0 {
			return "rapor"
		}
		return b.String()
	}

	return fmt.Sprintf("%s_%s_%s_%s.pdf",
		clean(r.FarmerName),
		clean(r.CropName),
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8])
}
