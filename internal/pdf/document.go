// Marka başlıklı rapor belgesi üretimi. Metrikler, grafikler ve kalem
// tabloları tek bir A4 PDF'te birleştirilir; durum tutmaz.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ciftlik-backend/internal/finance"
	"ciftlik-backend/internal/models"

	"github.com/go-pdf/fpdf"
)

// Build: Rapor + hesaplanmış metrikler + grafik görsellerinden PDF üretir.
// logoPath bulunamazsa logo sessizce atlanır (rapor logosuz da geçerli).
// barsPNG nil olabilir (gidersiz rapor).
func Build(report *models.Report, summary finance.Summary, piePNG, barsPNG []byte, logoPath string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("cp1254") // Türkçe karakterler için
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	// Logo (opsiyonel)
	if logoPath != "" {
		if _, err := os.Stat(logoPath); err == nil {
			doc.ImageOptions(logoPath, 10, 10, 38, 15, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
			doc.SetY(30)
		}
	}

	// Başlık
	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(74, 20, 140)
	doc.CellFormat(0, 10, tr("Çiftlik Finans Raporu: "+report.CropName), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	info := fmt.Sprintf("Çiftçi: %s | Konum: %s", report.FarmerName, report.Location)
	if report.Season != "" {
		info += " | Sezon: " + report.Season
	}
	doc.CellFormat(0, 6, tr(info), "", 1, "L", false, 0, "")
	if report.SowingDate != "" || report.HarvestDate != "" {
		doc.CellFormat(0, 6, tr(fmt.Sprintf("Ekim: %s | Hasat: %s", report.SowingDate, report.HarvestDate)), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	// Metrik tablosu
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(106, 27, 154)
	doc.SetTextColor(255, 255, 255)
	doc.SetDrawColor(128, 128, 128)
	doc.CellFormat(90, 9, tr("Finansal Metrikler"), "1", 0, "L", true, 0, "")
	doc.CellFormat(55, 9, tr("Değer"), "1", 1, "L", true, 0, "")

	doc.SetTextColor(0, 0, 0)
	metricRow(doc, tr, "Toplam Gelir", summary.TotalIncome)
	metricRow(doc, tr, "Toplam Gider", summary.TotalExpense)
	metricRow(doc, tr, "Net Kar/Zarar", summary.Net)
	metricRow(doc, tr, "Dönüm Başı Maliyet", summary.CostPerAcre)
	doc.Ln(5)

	// Pasta grafiği
	if len(piePNG) > 0 {
		doc.RegisterImageOptionsReader("summary-pie", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(piePNG))
		doc.ImageOptions("summary-pie", 10, doc.GetY(), 88, 66, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		doc.Ln(5)
	}

	// Gider dökümü
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Gider Dökümü"), "", 1, "L", false, 0, "")
	itemTable(doc, tr, expenseRows(report.ExpenseItems))
	doc.Ln(4)

	// Gelir dökümü
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Gelir Dökümü"), "", 1, "L", false, 0, "")
	itemTable(doc, tr, incomeRows(report.IncomeItems))
	doc.Ln(4)

	// Kategori çubuk grafiği (gider yoksa üretilmemiş olabilir)
	if len(barsPNG) > 0 {
		doc.RegisterImageOptionsReader("expense-bars", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(barsPNG))
		doc.ImageOptions("expense-bars", 10, doc.GetY(), 110, 66, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF oluşturulamadı: %w", err)
	}
	return buf.Bytes(), nil
}

func metricRow(doc *fpdf.Fpdf, tr func(string) string, label string, value float64) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(90, 8, tr(label), "1", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(55, 8, tr(FormatTL(value)), "1", 1, "R", false, 0, "")
}

type itemRow struct {
	category, date string
	amount         float64
}

func expenseRows(items []models.ExpenseItem) []itemRow {
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{it.Category, it.Date, it.Amount})
	}
	return rows
}

func incomeRows(items []models.IncomeItem) []itemRow {
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{it.Category, it.Date, it.Amount})
	}
	return rows
}

func itemTable(doc *fpdf.Fpdf, tr func(string) string, rows []itemRow) {
	if len(rows) == 0 {
		doc.SetFont("Helvetica", "I", 9)
		doc.CellFormat(0, 6, tr("Kayıt yok"), "", 1, "L", false, 0, "")
		return
	}

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(225, 190, 231)
	doc.CellFormat(55, 8, tr("Kategori"), "1", 0, "L", true, 0, "")
	doc.CellFormat(35, 8, tr("Tarih"), "1", 0, "L", true, 0, "")
	doc.CellFormat(40, 8, tr("Tutar"), "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		doc.CellFormat(55, 7, tr(r.category), "1", 0, "L", false, 0, "")
		doc.CellFormat(35, 7, tr(r.date), "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 7, tr(FormatTL(r.amount)), "1", 1, "R", false, 0, "")
	}
}

// FormatTL: 1234567.5 -> "1.234.567,50 TL" (Türkçe para formatı)
func FormatTL(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(ch)
	}

	out := b.String() + "," + fracPart + " TL"
	if neg {
		out = "-" + out
	}
	return out
}
