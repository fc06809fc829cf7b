// oceanoscuba-admin/internal/routes/api_routes.go
package routes

import (
	"oceanoscuba-admin/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registra todas las rutas versionadas que requieren
// autenticación.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	v1 := api.Group("/api/v1")
	{
		// --- CATEGORÍAS ---
		categories := v1.Group("/categories")
		{
			categories.GET("", handlers.ListCategoriesHandler)
			categories.POST("", handlers.CreateCategoryHandler)
			categories.GET("/:id", handlers.GetCategoryHandler)
			categories.PUT("/:id", handlers.UpdateCategoryHandler)
			categories.DELETE("/:id", handlers.DeleteCategoryHandler)
		}

		// --- SUBCATEGORÍAS ---
		subcategories := v1.Group("/subcategories")
		{
			subcategories.GET("", handlers.ListSubcategoriesHandler)
			subcategories.POST("", handlers.CreateSubcategoryHandler)
			subcategories.GET("/:id", handlers.GetSubcategoryHandler)
			subcategories.PUT("/:id", handlers.UpdateSubcategoryHandler)
			subcategories.DELETE("/:id", handlers.DeleteSubcategoryHandler)
		}

		// --- PRODUCTOS ---
		products := v1.Group("/products")
		{
			products.GET("", handlers.ListProductsHandler)
			products.POST("", handlers.CreateProductHandler)
			products.GET("/:id", handlers.GetProductHandler)
			products.PUT("/:id", handlers.UpdateProductHandler)
			products.DELETE("/:id", handlers.DeleteProductHandler)
			// Las asociaciones se actualizan con el id del producto.
			products.PUT("/:id/associations", handlers.UpdateProductAssociationsHandler)
		}

		// --- ZONAS ---
		zones := v1.Group("/zones")
		{
			zones.GET("", handlers.ListZonesHandler)
			zones.POST("", handlers.CreateZoneHandler)
			zones.GET("/:id", handlers.GetZoneHandler)
			zones.PUT("/:id", handlers.UpdateZoneHandler)
			zones.DELETE("/:id", handlers.DeleteZoneHandler)
		}

		// --- BANNERS ---
		banners := v1.Group("/banners")
		{
			banners.GET("", handlers.ListBannersHandler)
			banners.POST("", handlers.CreateBannerHandler)
			banners.GET("/:id", handlers.GetBannerHandler)
			banners.PUT("/:id", handlers.UpdateBannerHandler)
			banners.DELETE("/:id", handlers.DeleteBannerHandler)
		}

		// --- EMBARCACIONES ---
		vessels := v1.Group("/vessels")
		{
			vessels.GET("", handlers.ListVesselsHandler)
			vessels.POST("", handlers.CreateVesselHandler)
			vessels.GET("/:id", handlers.GetVesselHandler)
			vessels.PUT("/:id", handlers.UpdateVesselHandler)
			vessels.DELETE("/:id", handlers.DeleteVesselHandler)
		}

		// --- MARINAS ---
		marinas := v1.Group("/marinas")
		{
			marinas.GET("", handlers.ListMarinasHandler)
			marinas.POST("", handlers.CreateMarinaHandler)
			marinas.GET("/:id", handlers.GetMarinaHandler)
			marinas.PUT("/:id", handlers.UpdateMarinaHandler)
			marinas.DELETE("/:id", handlers.DeleteMarinaHandler)
		}

		// --- PERSONAS ---
		people := v1.Group("/people")
		{
			people.GET("", handlers.ListPeopleHandler)
			people.POST("", handlers.CreatePersonHandler)
			people.GET("/:id", handlers.GetPersonHandler)
			people.PUT("/:id", handlers.UpdatePersonHandler)
			people.DELETE("/:id", handlers.DeletePersonHandler)
		}

		// --- ACTIVIDADES ---
		activities := v1.Group("/activities")
		{
			activities.GET("", handlers.ListActivitiesHandler)
			activities.POST("", handlers.CreateActivityHandler)
			activities.GET("/:id", handlers.GetActivityHandler)
			activities.PUT("/:id", handlers.UpdateActivityHandler)
			activities.DELETE("/:id", handlers.DeleteActivityHandler)
		}

		// --- OPERACIONES DIARIAS ---
		operations := v1.Group("/daily-operations")
		{
			operations.GET("", handlers.ListDailyOperationsHandler)
			operations.POST("", handlers.CreateDailyOperationHandler)
			operations.GET("/:id", handlers.GetDailyOperationHandler)
			operations.PUT("/:id", handlers.UpdateDailyOperationHandler)
			operations.DELETE("/:id", handlers.DeleteDailyOperationHandler)
			operations.GET("/:id/manifest", handlers.ExportOperationManifestHandler)
		}

		// --- GRUPOS DE OPERACIÓN ---
		groups := v1.Group("/operation-groups")
		{
			groups.GET("", handlers.ListOperationGroupsHandler)
			groups.POST("", handlers.CreateOperationGroupHandler)
			groups.PUT("/:id", handlers.UpdateOperationGroupHandler)
			groups.DELETE("/:id", handlers.DeleteOperationGroupHandler)
		}

		// --- PARTICIPANTES ---
		participants := v1.Group("/operation-participants")
		{
			participants.POST("", handlers.CreateOperationParticipantHandler)
			participants.PUT("/:id", handlers.UpdateOperationParticipantHandler)
			participants.DELETE("/:id", handlers.DeleteOperationParticipantHandler)
		}

		// --- PLANTILLAS DE CONTRATO ---
		templates := v1.Group("/contracts/templates")
		{
			templates.GET("", handlers.ListContractTemplatesHandler)
			templates.POST("", handlers.CreateContractTemplateHandler)
			templates.GET("/:id", handlers.GetContractTemplateHandler)
			templates.PUT("/:id", handlers.UpdateContractTemplateHandler)
			templates.DELETE("/:id", handlers.DeleteContractTemplateHandler)
		}

		// --- CONTRATOS ---
		contracts := v1.Group("/contracts")
		{
			contracts.GET("", handlers.ListContractsHandler)
			contracts.POST("", handlers.CreateContractHandler)
			contracts.GET("/export", handlers.ExportContractsHandler)
			contracts.GET("/:id", handlers.GetContractHandler)
			contracts.PUT("/:id", handlers.UpdateContractHandler)
			contracts.DELETE("/:id", handlers.DeleteContractHandler)
			contracts.POST("/:id/sign", handlers.SignContractHandler)
			contracts.POST("/:id/invalidate", handlers.InvalidateContractHandler)
			contracts.POST("/:id/generate-pdf", handlers.GenerateContractDocumentHandler)
			contracts.GET("/:id/download", handlers.DownloadContractHandler)
		}

		// --- CONFIGURACIÓN DE COMPAÑÍA ---
		settings := v1.Group("/company-settings")
		{
			settings.GET("", handlers.GetCompanySettingsHandler)
			settings.PUT("", handlers.UpdateCompanySettingsHandler)
		}

		// --- ALMACENAMIENTO ---
		storage := v1.Group("/storage")
		{
			storage.POST("/files", handlers.UploadFileHandler)
		}

		// --- EVENTOS ---
		events := v1.Group("/events")
		{
			events.GET("/ws", handlers.EventsWSHandler)
		}
	}
}
