package routes

import (
	"oceanoscuba-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes inicializa todas las rutas del servicio.
func SetupRoutes(r *gin.Engine) {
	r.Use(middleware.CORSMiddleware())

	// Rutas públicas: login y la vía de firma por token, que no exigen
	// cabecera Authorization.
	RegisterAuthRoutes(r)
	RegisterPublicRoutes(r)

	// Todo lo demás exige un token Bearer válido y compañía asignada.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
