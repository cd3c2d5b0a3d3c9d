package report

import (
	"path/filepath"
	"testing"

	"ciftlik-backend/internal/config"
	"ciftlik-backend/internal/database"
	"ciftlik-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Geçici dizinde taze bir SQLite dosyası açar ve global DB'yi ona bağlar
func setupTestDB(t *testing.T) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Report{},
		&models.IncomeItem{},
		&models.ExpenseItem{},
		&models.AuditLog{},
	))

	database.DB = db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ReportsDir: dir,
		LogoPath:   filepath.Join(dir, "logo.png"), // yok; logosuz belge üretilir
	}
}

func countExpenseItems(reportID uint, out *int64) error {
	return database.DB.Model(&models.ExpenseItem{}).Where("report_id = ?", reportID).Count(out).Error
}

func samplePayload() *ReportPayload {
	return &ReportPayload{
		FarmerName: "Ahmet Yılmaz",
		CropName:   "Buğday",
		Season:     "2025 Yaz",
		Location:   "Konya",
		TotalAcres: 2,
		Incomes: []LineItemPayload{
			{Category: "Buğday Satışı", Amount: 50000, Date: "2025-08-20"},
		},
		Expenses: []LineItemPayload{
			{Category: "Tohum", Amount: 5000, Date: "2025-03-10"},
			{Category: "Gübre", Amount: 3000, Date: "2025-04-02"},
		},
	}
}
