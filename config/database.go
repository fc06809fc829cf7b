// oceanoscuba-admin/config/database.go

package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"oceanoscuba-admin/models"
)

var DB *gorm.DB

// ConnectDB abre la conexión a Postgres usando la variable de entorno DB_URL.
func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		slog.Error("Error crítico: la variable de entorno DB_URL no está definida.")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("Error de conexión a la base de datos", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Conexión a la base de datos establecida")
}

// MigrateDB ejecuta la auto-migración de todos los modelos.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.Zone{},
		&models.Banner{},
		&models.Vessel{},
		&models.Marina{},
		&models.Activity{},
		&models.Person{},
		&models.DailyOperation{},
		&models.OperationGroup{},
		&models.OperationParticipant{},
		&models.ContractTemplate{},
		&models.TemplateVariable{},
		&models.Contract{},
		&models.CompanySetting{},
	)
}
