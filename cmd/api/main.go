package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orbix/internal/httpserver"
	"orbix/internal/logger"
	"orbix/internal/models"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := migrate(db); err != nil {
		lg.Fatalw("migrate failed", "error", err)
	}

	router := httpserver.NewRouter(db, lg)
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	lg.Infow("listening", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.Invoice{},
		&models.InvoiceCounter{},
		&models.TimeEntry{},
		&models.Contract{},
		&models.Resume{},
	); err != nil {
		return err
	}
	// one open timer per user, enforced at the store
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_one_running
		ON time_entries (user_id) WHERE end_time IS NULL`).Error
}
