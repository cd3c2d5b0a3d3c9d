package models

import "time"

// Report: Bir çiftçinin tek bir dönem için gönderdiği finansal kayıt.
// Türetilmiş alanlar (toplam gelir, toplam gider, net kar, dönüm başı maliyet)
// burada SAKLANMAZ; her okuma/yazmada finance paketi üzerinden yeniden hesaplanır.
type Report struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FarmerName string `gorm:"size:100;not null;index" json:"farmer_name"`
	CropName   string `gorm:"size:100;not null" json:"crop_name"`
	Season     string `gorm:"size:50" json:"season"`
	Location   string `gorm:"size:150" json:"location"`

	TotalAcres      float64 `gorm:"not null" json:"total_acres"` // dönüm, > 0 olmalı
	TotalProduction float64 `json:"total_production"`            // toplam üretim (kg/ton, serbest)

	SowingDate  string `gorm:"size:20" json:"sowing_date"`  // "2025-03-15"
	HarvestDate string `gorm:"size:20" json:"harvest_date"` // "2025-08-20"

	// Son üretilen PDF dosyasının adı. Render başarısız olursa boş kalabilir;
	// kayıt yine de geçerlidir.
	PDFFilename string `gorm:"size:255" json:"pdf_filename"`

	IncomeItems  []IncomeItem  `gorm:"constraint:OnDelete:CASCADE" json:"income_items"`
	ExpenseItems []ExpenseItem `gorm:"constraint:OnDelete:CASCADE" json:"expense_items"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IncomeItem: Gelir kalemi (ör: "Buğday Satışı", 50000)
type IncomeItem struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	ReportID uint `gorm:"index;not null" json:"-"`

	Category    string  `gorm:"size:100;not null" json:"category"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Date        string  `gorm:"size:20" json:"date"`
	Description string  `gorm:"size:255" json:"description"`

	// Gönderim sırası korunur, listelemede buna göre sıralanır
	Position int `gorm:"not null" json:"-"`
}

// ExpenseItem: Gider kalemi (ör: "Tohum", 5000)
type ExpenseItem struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	ReportID uint `gorm:"index;not null" json:"-"`

	Category    string  `gorm:"size:100;not null" json:"category"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Date        string  `gorm:"size:20" json:"date"`
	Description string  `gorm:"size:255" json:"description"`

	Position int `gorm:"not null" json:"-"`
}
