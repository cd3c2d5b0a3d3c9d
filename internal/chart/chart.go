// Gelir/gider dağılım grafikleri. PDF'e gömülmek üzere PNG üretir;
// durum tutmaz, aynı girdi her zaman aynı görseli verir.
package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	incomeColor  = drawing.ColorFromHex("4caf50")
	expenseColor = drawing.ColorFromHex("ff5722")
)

// RenderSummaryPie: Toplam gelir / toplam gider pasta grafiği.
// İkisi de sıfırsa eşit iki dilim çizilir; boş rapor da belge üretebilmeli.
func RenderSummaryPie(totalIncome, totalExpense float64) ([]byte, error) {
	incomeVal := totalIncome
	expenseVal := totalExpense
	if incomeVal+expenseVal == 0 {
		incomeVal, expenseVal = 1, 1
	}

	pie := chart.PieChart{
		Width:  400,
		Height: 300,
		Values: []chart.Value{
			{Value: incomeVal, Label: "Gelir", Style: chart.Style{FillColor: incomeColor}},
			{Value: expenseVal, Label: "Gider", Style: chart.Style{FillColor: expenseColor}},
		},
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("pasta grafiği çizilemedi: %w", err)
	}
	return buf.Bytes(), nil
}

// CategoryAmount: Kategori bazlı toplam (sıralı; map kullanmıyoruz çünkü
// gönderim sırası korunmalı)
type CategoryAmount struct {
	Category string
	Amount   float64
}

// RenderExpenseBars: Gider kategorilerinin çubuk grafiği. Hiç gider yoksa
// veya hepsi sıfırsa çağıran taraf grafiği atlamalı (nil, nil döner).
func RenderExpenseBars(items []CategoryAmount) ([]byte, error) {
	total := 0.0
	for _, it := range items {
		total += it.Amount
	}
	if len(items) == 0 || total == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(items))
	for _, it := range items {
		bars = append(bars, chart.Value{
			Value: it.Amount,
			Label: it.Category,
			Style: chart.Style{FillColor: expenseColor},
		})
	}

	bar := chart.BarChart{
		Title:    "Gider Dağılımı",
		Width:    500,
		Height:   300,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := bar.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("çubuk grafiği çizilemedi: %w", err)
	}
	return buf.Bytes(), nil
}
