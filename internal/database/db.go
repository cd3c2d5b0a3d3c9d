package database

import (
	"log"

	"ciftlik-backend/internal/config"
	"ciftlik-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// CGO'suz SQLite sürücüsü; tek dosyalık yerel veritabanı
	DB, err = gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// position kolonu sonradan eklendi; eski kayıtlar için migration gerekli mi?
	needsPositionBackfill := DB.Migrator().HasTable(&models.IncomeItem{}) &&
		!DB.Migrator().HasColumn(&models.IncomeItem{}, "position")

	err = DB.AutoMigrate(
		&models.Report{},
		&models.IncomeItem{},
		&models.ExpenseItem{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	// Eski kayıtlarda position hep 0 kalır, gönderim sırası id sırasıyla aynı
	// olduğu için id'den doldur
	if needsPositionBackfill {
		log.Println("Eski satırlar için position kolonu dolduruluyor...")
		if err := DB.Exec("UPDATE income_items SET position = id WHERE position = 0").Error; err != nil {
			log.Printf("income_items.position doldurulurken hata: %v", err)
		}
		if err := DB.Exec("UPDATE expense_items SET position = id WHERE position = 0").Error; err != nil {
			log.Printf("expense_items.position doldurulurken hata: %v", err)
		}
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
