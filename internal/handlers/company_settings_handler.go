// oceanoscuba-admin/internal/handlers/company_settings_handler.go
package handlers

import (
	"errors"
	"net/http"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCompanySettingsHandler devuelve la configuración de la compañía; si
// aún no existe, crea la fila vacía en la primera lectura.
func GetCompanySettingsHandler(c *gin.Context) {
	var settings models.CompanySetting
	err := config.DB.Where("company_id = ?", companyID(c)).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.CompanySetting{CompanyID: companyID(c)}
		if err := config.DB.Create(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la configuración"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo leer la configuración"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func UpdateCompanySettingsHandler(c *gin.Context) {
	var settings models.CompanySetting
	err := config.DB.Where("company_id = ?", companyID(c)).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.CompanySetting{CompanyID: companyID(c)}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo leer la configuración"})
		return
	}

	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	settings.CompanyID = companyID(c)

	if err := config.DB.Save(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar la configuración"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
