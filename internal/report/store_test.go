package report

import (
	"testing"
	"time"

	"ciftlik-backend/internal/finance"
	"ciftlik-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateAndGetRoundTrip(t *testing.T) {
	setupTestDB(t)

	r := &models.Report{
		FarmerName: "Ahmet Yılmaz",
		CropName:   "Buğday",
		TotalAcres: 2,
		IncomeItems: []models.IncomeItem{
			{Category: "Buğday Satışı", Amount: 50000, Position: 1},
		},
		ExpenseItems: []models.ExpenseItem{
			{Category: "Tohum", Amount: 5000, Position: 1},
			{Category: "Gübre", Amount: 3000, Position: 2},
		},
	}
	require.NoError(t, CreateReport(r))
	require.NotZero(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())

	got, err := GetReport(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ahmet Yılmaz", got.FarmerName)
	require.Len(t, got.IncomeItems, 1)
	require.Len(t, got.ExpenseItems, 2)
	assert.Equal(t, "Tohum", got.ExpenseItems[0].Category)
	assert.Equal(t, "Gübre", got.ExpenseItems[1].Category)

	// Saklanan kalemlerden taze hesap, beklenen metrikleri vermeli
	summary, err := finance.Compute(got.IncomeItems, got.ExpenseItems, got.TotalAcres)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, summary.TotalIncome)
	assert.Equal(t, 8000.0, summary.TotalExpense)
	assert.Equal(t, 42000.0, summary.Net)
	assert.Equal(t, 4000.0, summary.CostPerAcre)
}

func TestGetNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := GetReport(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListOrder(t *testing.T) {
	setupTestDB(t)

	first := &models.Report{FarmerName: "Birinci", CropName: "Arpa", TotalAcres: 1}
	require.NoError(t, CreateReport(first))

	time.Sleep(20 * time.Millisecond)

	second := &models.Report{FarmerName: "İkinci", CropName: "Mısır", TotalAcres: 1}
	require.NoError(t, CreateReport(second))

	reports, err := ListReports()
	require.NoError(t, err)
	require.Len(t, reports, 2)

	// En yeni rapor en üstte
	assert.Equal(t, "İkinci", reports[0].FarmerName)
	assert.Equal(t, "Birinci", reports[1].FarmerName)
}

func TestUpdateReplacesItemsAndRecomputes(t *testing.T) {
	setupTestDB(t)

	r := &models.Report{
		FarmerName: "Ahmet Yılmaz",
		CropName:   "Buğday",
		TotalAcres: 2,
		ExpenseItems: []models.ExpenseItem{
			{Category: "Tohum", Amount: 5000, Position: 1},
		},
	}
	require.NoError(t, CreateReport(r))
	createdAt := r.CreatedAt
	firstUpdatedAt := r.UpdatedAt

	time.Sleep(20 * time.Millisecond)

	header := models.Report{
		FarmerName: "Ahmet Yılmaz",
		CropName:   "Buğday",
		TotalAcres: 4,
	}
	newExpenses := []models.ExpenseItem{
		{Category: "İşçilik", Amount: 2000, Position: 1},
	}
	updated, err := UpdateReport(r.ID, header, nil, newExpenses)
	require.NoError(t, err)

	// Kimlik ve oluşturma zamanı değişmez, güncelleme zamanı artar
	assert.Equal(t, r.ID, updated.ID)
	assert.Equal(t, createdAt.Unix(), updated.CreatedAt.Unix())
	assert.True(t, updated.UpdatedAt.After(firstUpdatedAt), "UpdatedAt artmalı")

	// Eski kalemler tamamen değişti
	require.Len(t, updated.ExpenseItems, 1)
	assert.Equal(t, "İşçilik", updated.ExpenseItems[0].Category)

	// Metrikler bayat değil, yeni kalemlerden hesaplanıyor
	summary, err := finance.Compute(updated.IncomeItems, updated.ExpenseItems, updated.TotalAcres)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, summary.TotalExpense)
	assert.Equal(t, 500.0, summary.CostPerAcre)
}

func TestUpdateNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := UpdateReport(1234, models.Report{FarmerName: "X", CropName: "Y", TotalAcres: 1}, nil, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteReport(t *testing.T) {
	setupTestDB(t)

	r := &models.Report{
		FarmerName:   "Ahmet Yılmaz",
		CropName:     "Buğday",
		TotalAcres:   1,
		ExpenseItems: []models.ExpenseItem{{Category: "Tohum", Amount: 100, Position: 1}},
	}
	require.NoError(t, CreateReport(r))

	require.NoError(t, DeleteReport(r.ID))

	_, err := GetReport(r.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Kalemler de silinmiş olmalı
	var count int64
	require.NoError(t, countExpenseItems(r.ID, &count))
	assert.Zero(t, count)
}

func TestDeleteNotFound(t *testing.T) {
	setupTestDB(t)
	assert.ErrorIs(t, DeleteReport(777), gorm.ErrRecordNotFound)
}

func TestSetReportPDF(t *testing.T) {
	setupTestDB(t)

	r := &models.Report{FarmerName: "Ahmet", CropName: "Arpa", TotalAcres: 1}
	require.NoError(t, CreateReport(r))

	require.NoError(t, SetReportPDF(r.ID, "Ahmet_Arpa_20250831_120000_abcd1234.pdf"))

	got, err := GetReport(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ahmet_Arpa_20250831_120000_abcd1234.pdf", got.PDFFilename)
}
