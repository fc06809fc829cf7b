// oceanoscuba-admin/internal/handlers/contract_template_handler.go
package handlers

import (
	"net/http"
	"strings"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TemplateVariableInput struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Description  string `json:"description"`
	DataType     string `json:"data_type"`
	Required     bool   `json:"required"`
	DefaultValue string `json:"default_value"`
	SortOrder    int    `json:"sort_order"`
}

type ContractTemplateInput struct {
	Name        string                  `json:"name"`
	Sku         string                  `json:"sku"`
	Description string                  `json:"description"`
	HTMLContent string                  `json:"html_content"`
	IsActive    *bool                   `json:"is_active"`
	Variables   []TemplateVariableInput `json:"variables"`
}

var validVariableTypes = map[string]bool{
	models.VariableTypeText:      true,
	models.VariableTypeNumber:    true,
	models.VariableTypeDate:      true,
	models.VariableTypeSignature: true,
	models.VariableTypeEmail:     true,
}

// buildVariables materializa las variables de entrada. Una variable sin
// sort_order recibe su posición de inserción contando desde 1.
func buildVariables(inputs []TemplateVariableInput) ([]models.TemplateVariable, string) {
	variables := make([]models.TemplateVariable, 0, len(inputs))
	for i, in := range inputs {
		if in.Key == "" {
			return nil, "Toda variable necesita una clave"
		}
		dataType := in.DataType
		if dataType == "" {
			dataType = models.VariableTypeText
		}
		if !validVariableTypes[dataType] {
			return nil, "Tipo de dato inválido: " + in.DataType
		}
		sortOrder := in.SortOrder
		if sortOrder == 0 {
			sortOrder = i + 1
		}
		variables = append(variables, models.TemplateVariable{
			Key:          in.Key,
			Label:        in.Label,
			Description:  in.Description,
			DataType:     dataType,
			Required:     in.Required,
			DefaultValue: in.DefaultValue,
			SortOrder:    sortOrder,
		})
	}
	return variables, ""
}

func ListContractTemplatesHandler(c *gin.Context) {
	var templates []models.ContractTemplate
	var totalRows int64

	baseQuery := config.DB.Model(&models.ContractTemplate{}).Where("company_id = ?", companyID(c))
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if c.Query("active") == "true" {
		baseQuery = baseQuery.Where("is_active = ?", true)
	}

	if c.Query("all") == "true" {
		if err := baseQuery.Preload("Variables", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		}).Order("name").Find(&templates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de plantillas"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": templates})
		return
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar las plantillas"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).Preload("Variables", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).Order("name").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de plantillas"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, templates, totalRows))
}

func GetContractTemplateHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var template models.ContractTemplate
	if err := config.DB.Preload("Variables", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).Where("company_id = ?", companyID(c)).First(&template, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plantilla no encontrada"})
		return
	}
	c.JSON(http.StatusOK, template)
}

func CreateContractTemplateHandler(c *gin.Context) {
	var input ContractTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if input.Name == "" || input.Sku == "" || input.HTMLContent == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre, SKU y contenido HTML son obligatorios"})
		return
	}

	var existing int64
	config.DB.Model(&models.ContractTemplate{}).
		Where("company_id = ? AND sku = ?", companyID(c), input.Sku).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Ya existe una plantilla con ese SKU"})
		return
	}

	variables, errMsg := buildVariables(input.Variables)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	template := models.ContractTemplate{
		CompanyID:   companyID(c),
		Name:        input.Name,
		Sku:         input.Sku,
		Description: input.Description,
		HTMLContent: input.HTMLContent,
		IsActive:    isActive,
		Variables:   variables,
	}

	if err := config.DB.Create(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la plantilla"})
		return
	}
	c.JSON(http.StatusCreated, template)
}

// UpdateContractTemplateHandler aplica una actualización parcial. Si el
// cuerpo trae variables, el conjunto anterior se reemplaza completo.
func UpdateContractTemplateHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var template models.ContractTemplate
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&template, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plantilla no encontrada"})
		return
	}

	var input ContractTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}

	if input.Sku != "" && input.Sku != template.Sku {
		var existing int64
		config.DB.Model(&models.ContractTemplate{}).
			Where("company_id = ? AND sku = ? AND id <> ?", companyID(c), input.Sku, id).
			Count(&existing)
		if existing > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Ya existe una plantilla con ese SKU"})
			return
		}
		template.Sku = input.Sku
	}
	if input.Name != "" {
		template.Name = input.Name
	}
	if input.Description != "" {
		template.Description = input.Description
	}
	if input.HTMLContent != "" {
		template.HTMLContent = input.HTMLContent
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if input.Variables != nil {
			variables, errMsg := buildVariables(input.Variables)
			if errMsg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
				return gorm.ErrInvalidData
			}
			if err := tx.Where("template_id = ?", template.ID).Delete(&models.TemplateVariable{}).Error; err != nil {
				return err
			}
			for i := range variables {
				variables[i].TemplateID = template.ID
			}
			if len(variables) > 0 {
				if err := tx.Create(&variables).Error; err != nil {
					return err
				}
			}
			template.Variables = variables
		}
		return tx.Omit("Variables").Save(&template).Error
	})
	if err != nil {
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la plantilla"})
		}
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteContractTemplateHandler existe por completitud de la API: el panel
// desactiva plantillas con is_active en lugar de borrarlas.
func DeleteContractTemplateHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var template models.ContractTemplate
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&template, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plantilla no encontrada"})
		return
	}
	if err := config.DB.Delete(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la plantilla"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plantilla eliminada"})
}
