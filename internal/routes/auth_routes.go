package routes

import (
	"oceanoscuba-admin/internal/handlers"
	"oceanoscuba-admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registra las rutas de autenticación. El login es la
// única pública; me y logout validan el token por su cuenta.
func RegisterAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", handlers.LoginHandler)
		auth.GET("/me", middleware.AuthMiddleware(), handlers.MeHandler)
		auth.POST("/logout", middleware.AuthMiddleware(), handlers.LogoutHandler)
	}
}
