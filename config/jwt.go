// oceanoscuba-admin/config/jwt.go
package config

import (
	"log/slog"
	"os"
)

var JwtKey []byte

// InitJWT carga la clave de firma desde JWT_SECRET.
func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("Error crítico: la variable de entorno JWT_SECRET no está definida.")
		os.Exit(1)
	}
	JwtKey = []byte(secret)
}

// UploadsDir devuelve el directorio raíz para archivos subidos.
func UploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}
