package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort     string
	DatabasePath string // SQLite dosya yolu
	CORSOrigins  string
	ReportsDir   string // Üretilen PDF raporlarının kaydedileceği klasör
	LogoPath     string // PDF başlığında kullanılacak logo (opsiyonel)
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "ciftlik.db"),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		ReportsDir:   getEnv("REPORTS_DIR", "./reports"),
		LogoPath:     getEnv("LOGO_PATH", "./static/logo.png"),
	}

	if cfg.DatabasePath == "ciftlik.db" {
		log.Println("[WARN] DATABASE_PATH varsayılan değer kullanılıyor, production için kalıcı bir disk yolu tanımla.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

	// Rapor klasörü yoksa oluştur
	if err := os.MkdirAll(cfg.ReportsDir, 0o755); err != nil {
		log.Fatalf("[FATAL] Rapor klasörü oluşturulamadı (%s): %v", cfg.ReportsDir, err)
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
