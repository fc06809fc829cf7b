// oceanoscuba-admin/cmd/server/main.go
package main

import (
	"log/slog"
	"os"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/internal/expiry"
	"oceanoscuba-admin/internal/handlers"
	"oceanoscuba-admin/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	config.InitJWT()
	config.ConnectDB()
	config.ConnectRedis()

	if err := config.MigrateDB(config.DB); err != nil {
		slog.Error("Fallo la migración de la base de datos", "error", err)
		os.Exit(1)
	}

	go handlers.GlobalHub.Run()

	sweeper := expiry.Start(config.DB)
	defer sweeper.Stop()

	r := gin.Default()
	routes.SetupRoutes(r)
	// Los archivos subidos se sirven bajo /static (las URLs que devuelve el
	// endpoint de almacenamiento apuntan aquí).
	r.Static("/static", config.UploadsDir())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("Servidor iniciado", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("El servidor terminó con error", "error", err)
		os.Exit(1)
	}
}
