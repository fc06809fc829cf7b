package routes

import (
	"oceanoscuba-admin/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registra la vía pública de contratos: el firmante
// llega con un token opaco por enlace y no tiene sesión.
func RegisterPublicRoutes(r *gin.Engine) {
	public := r.Group("/api/v1/contracts/public")
	{
		public.GET("/:token", handlers.PublicGetContractHandler)
		public.GET("/:token/status", handlers.PublicContractStatusHandler)
		public.POST("/:token/sign", handlers.PublicSignContractHandler)
	}
}
