// oceanoscuba-admin/internal/handlers/fleet_handler.go
package handlers

import (
	"net/http"
	"strings"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/models"

	"github.com/gin-gonic/gin"
)

// --- EMBARCACIONES ---

func ListVesselsHandler(c *gin.Context) {
	var vessels []models.Vessel
	var totalRows int64

	baseQuery := config.DB.Model(&models.Vessel{}).Where("company_id = ?", companyID(c))
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where("LOWER(name) LIKE ? OR LOWER(registration) LIKE ?", pattern, pattern)
	}

	if c.Query("all") == "true" {
		if err := baseQuery.Order("name").Find(&vessels).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de embarcaciones"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": vessels})
		return
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar las embarcaciones"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).Preload("Marina").Order("name").Find(&vessels).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de embarcaciones"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, vessels, totalRows))
}

func GetVesselHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var vessel models.Vessel
	if err := config.DB.Preload("Marina").Where("company_id = ?", companyID(c)).First(&vessel, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Embarcación no encontrada"})
		return
	}
	c.JSON(http.StatusOK, vessel)
}

func CreateVesselHandler(c *gin.Context) {
	var vessel models.Vessel
	if err := c.ShouldBindJSON(&vessel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if vessel.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre es obligatorio"})
		return
	}
	if vessel.Capacity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La capacidad no puede ser negativa"})
		return
	}
	vessel.ID = 0
	vessel.CompanyID = companyID(c)
	vessel.Marina = nil

	if err := config.DB.Create(&vessel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la embarcación"})
		return
	}
	c.JSON(http.StatusCreated, vessel)
}

func UpdateVesselHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var vessel models.Vessel
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&vessel, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Embarcación no encontrada"})
		return
	}
	if err := c.ShouldBindJSON(&vessel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	vessel.ID = id
	vessel.CompanyID = companyID(c)
	vessel.Marina = nil

	if err := config.DB.Save(&vessel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la embarcación"})
		return
	}
	c.JSON(http.StatusOK, vessel)
}

func DeleteVesselHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var vessel models.Vessel
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&vessel, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Embarcación no encontrada"})
		return
	}
	if err := config.DB.Delete(&vessel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la embarcación"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Embarcación eliminada"})
}

// --- MARINAS ---

func ListMarinasHandler(c *gin.Context) {
	var marinas []models.Marina
	var totalRows int64

	baseQuery := config.DB.Model(&models.Marina{}).Where("company_id = ?", companyID(c))
	if search := c.Query("search"); search != "" {
		baseQuery = baseQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if c.Query("all") == "true" {
		if err := baseQuery.Order("name").Find(&marinas).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de marinas"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": marinas})
		return
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar las marinas"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).Order("name").Find(&marinas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de marinas"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, marinas, totalRows))
}

func GetMarinaHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var marina models.Marina
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&marina, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Marina no encontrada"})
		return
	}
	c.JSON(http.StatusOK, marina)
}

func CreateMarinaHandler(c *gin.Context) {
	var marina models.Marina
	if err := c.ShouldBindJSON(&marina); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if marina.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre es obligatorio"})
		return
	}
	marina.ID = 0
	marina.CompanyID = companyID(c)

	if err := config.DB.Create(&marina).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la marina"})
		return
	}
	c.JSON(http.StatusCreated, marina)
}

func UpdateMarinaHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var marina models.Marina
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&marina, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Marina no encontrada"})
		return
	}
	if err := c.ShouldBindJSON(&marina); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	marina.ID = id
	marina.CompanyID = companyID(c)

	if err := config.DB.Save(&marina).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la marina"})
		return
	}
	c.JSON(http.StatusOK, marina)
}

func DeleteMarinaHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var marina models.Marina
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&marina, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Marina no encontrada"})
		return
	}
	if err := config.DB.Delete(&marina).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la marina"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marina eliminada"})
}
