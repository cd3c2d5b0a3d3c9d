package main

import (
	"log"
	"strings"

	"ciftlik-backend/internal/audit"
	"ciftlik-backend/internal/config"
	"ciftlik-backend/internal/database"
	"ciftlik-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Rapor CRUD + belge üretimi
	api.Post("/reports", report.CreateReportHandler(cfg))
	api.Get("/reports", report.ListReportsHandler())
	api.Get("/reports/export/xlsx", report.ExportReportsXLSXHandler())
	api.Get("/reports/:id", report.GetReportHandler())
	api.Put("/reports/:id", report.UpdateReportHandler(cfg))
	api.Delete("/reports/:id", report.DeleteReportHandler(cfg))
	api.Get("/reports/:id/pdf", report.GetReportPDFHandler(cfg))

	// Audit logs
	api.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Üretilen PDF dosyaları (eski arayüz dosya adıyla indiriyor)
	app.Get("/reports/:filename", report.DownloadReportFileHandler(cfg))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
