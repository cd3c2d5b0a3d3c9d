package finance

import (
	"errors"

	"ciftlik-backend/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidLandArea = errors.New("dönüm (acre) değeri sıfırdan büyük olmalı")
	ErrNegativeAmount  = errors.New("kalem tutarı negatif olamaz")
)

// Summary: Bir rapor için türetilmiş finansal metrikler. Bu değerler asla
// veritabanında saklanmaz, her seferinde Compute ile yeniden hesaplanır.
type Summary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Net          float64 `json:"net"`           // pozitif = kar, negatif = zarar
	CostPerAcre  float64 `json:"cost_per_acre"` // toplam gider / dönüm
}

// Compute: Gelir/gider kalemlerinden ve dönüm değerinden metrikleri hesaplar.
// Parasal toplamlar float drift'i önlemek için decimal üzerinden yürür,
// sonuçlar 2 haneye yuvarlanır. Saf fonksiyon, yan etkisi yok.
func Compute(incomes []models.IncomeItem, expenses []models.ExpenseItem, totalAcres float64) (Summary, error) {
	if totalAcres <= 0 {
		return Summary{}, ErrInvalidLandArea
	}

	totalIncome := decimal.Zero
	for _, it := range incomes {
		if it.Amount < 0 {
			return Summary{}, ErrNegativeAmount
		}
		totalIncome = totalIncome.Add(decimal.NewFromFloat(it.Amount))
	}

	totalExpense := decimal.Zero
	for _, it := range expenses {
		if it.Amount < 0 {
			return Summary{}, ErrNegativeAmount
		}
		totalExpense = totalExpense.Add(decimal.NewFromFloat(it.Amount))
	}

	net := totalIncome.Sub(totalExpense)
	costPerAcre := totalExpense.Div(decimal.NewFromFloat(totalAcres))

	return Summary{
		TotalIncome:  round2(totalIncome),
		TotalExpense: round2(totalExpense),
		Net:          round2(net),
		CostPerAcre:  round2(costPerAcre),
	}, nil
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
