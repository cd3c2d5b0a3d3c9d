package report

import (
	"ciftlik-backend/internal/database"
	"ciftlik-backend/internal/models"

	"gorm.io/gorm"
)

// Rapor tablosuna tüm erişim bu dosya üzerinden yürür; handler'lar ve
// orkestrasyon katmanı rapor satırlarına doğrudan dokunmaz.

// CreateReport: Raporu kalemleriyle birlikte tek transaction'da kaydeder.
// ID, CreatedAt ve UpdatedAt GORM tarafından atanır.
func CreateReport(r *models.Report) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(r).Error
	})
}

// GetReport: Kalemler gönderim sırasında (position) yüklenir.
// Kayıt yoksa gorm.ErrRecordNotFound döner.
func GetReport(id uint) (*models.Report, error) {
	var r models.Report
	err := database.DB.
		Preload("IncomeItems", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("ExpenseItems", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&r, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReports: Özet görünüm, en yeni rapor en üstte.
func ListReports() ([]models.Report, error) {
	var reports []models.Report
	err := database.DB.
		Preload("IncomeItems", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("ExpenseItems", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Order("created_at desc").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateReport: Tam gövde değişimi. Eski kalemler silinir, yenileri yazılır,
// başlık alanları güncellenir; hepsi tek transaction'da. UpdatedAt GORM
// tarafından yükseltilir. Kayıt yoksa gorm.ErrRecordNotFound döner.
func UpdateReport(id uint, header models.Report, incomes []models.IncomeItem, expenses []models.ExpenseItem) (*models.Report, error) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Report
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("report_id = ?", id).Delete(&models.IncomeItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&models.ExpenseItem{}).Error; err != nil {
			return err
		}

		existing.FarmerName = header.FarmerName
		existing.CropName = header.CropName
		existing.Season = header.Season
		existing.Location = header.Location
		existing.TotalAcres = header.TotalAcres
		existing.TotalProduction = header.TotalProduction
		existing.SowingDate = header.SowingDate
		existing.HarvestDate = header.HarvestDate

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		for i := range incomes {
			incomes[i].ID = 0
			incomes[i].ReportID = id
		}
		if len(incomes) > 0 {
			if err := tx.Create(&incomes).Error; err != nil {
				return err
			}
		}
		for i := range expenses {
			expenses[i].ID = 0
			expenses[i].ReportID = id
		}
		if len(expenses) > 0 {
			if err := tx.Create(&expenses).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetReport(id)
}

// DeleteReport: Hard delete; rapor ve kalemleri tek transaction'da silinir.
// Silinen kaydın son hali audit log'da JSON olarak durur.
func DeleteReport(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Report
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("report_id = ?", id).Delete(&models.IncomeItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&models.ExpenseItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Report{}, "id = ?", id).Error
	})
}

// SetReportPDF: Üretilen PDF dosya adını kayda işler. Render sonrası
// çağrılır; render başarısızsa rapor dosya adı olmadan kalır.
func SetReportPDF(id uint, filename string) error {
	return database.DB.Model(&models.Report{}).
		Where("id = ?", id).
		Update("pdf_filename", filename).Error
}
