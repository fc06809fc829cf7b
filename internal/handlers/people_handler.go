// oceanoscuba-admin/internal/handlers/people_handler.go
package handlers

import (
	"net/http"
	"strings"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/models"

	"github.com/gin-gonic/gin"
)

// --- PERSONAS (tripulación y clientes) ---

func ListPeopleHandler(c *gin.Context) {
	var people []models.Person
	var totalRows int64

	baseQuery := config.DB.Model(&models.Person{}).Where("company_id = ?", companyID(c))
	if kind := c.Query("kind"); kind != "" {
		baseQuery = baseQuery.Where("kind = ?", kind)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(identity_number) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if c.Query("all") == "true" {
		if err := baseQuery.Order("last_name, first_name").Find(&people).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de personas"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": people})
		return
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar las personas"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).Order("last_name, first_name").Find(&people).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de personas"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, people, totalRows))
}

func GetPersonHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var person models.Person
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&person, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Persona no encontrada"})
		return
	}
	c.JSON(http.StatusOK, person)
}

func CreatePersonHandler(c *gin.Context) {
	var person models.Person
	if err := c.ShouldBindJSON(&person); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if person.FirstName == "" || person.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre y apellido son obligatorios"})
		return
	}
	person.ID = 0
	person.CompanyID = companyID(c)
	if person.Kind == "" {
		person.Kind = "CLIENT"
	}

	if err := config.DB.Create(&person).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la persona"})
		return
	}
	c.JSON(http.StatusCreated, person)
}

func UpdatePersonHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var person models.Person
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&person, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Persona no encontrada"})
		return
	}
	if err := c.ShouldBindJSON(&person); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	person.ID = id
	person.CompanyID = companyID(c)

	if err := config.DB.Save(&person).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la persona"})
		return
	}
	c.JSON(http.StatusOK, person)
}

func DeletePersonHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var person models.Person
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&person, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Persona no encontrada"})
		return
	}
	if err := config.DB.Delete(&person).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la persona"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Persona eliminada"})
}

// --- ACTIVIDADES ---

func ListActivitiesHandler(c *gin.Context) {
	var activities []models.Activity
	var totalRows int64

	baseQuery := config.DB.Model(&models.Activity{}).Where("company_id = ?", companyID(c))
	if search := c.Query("search"); search != "" {
		baseQuery = baseQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if c.Query("all") == "true" {
		if err := baseQuery.Order("name").Find(&activities).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de actividades"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": activities})
		return
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar las actividades"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).Order("name").Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de actividades"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, activities, totalRows))
}

func GetActivityHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var activity models.Activity
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&activity, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Actividad no encontrada"})
		return
	}
	c.JSON(http.StatusOK, activity)
}

func CreateActivityHandler(c *gin.Context) {
	var activity models.Activity
	if err := c.ShouldBindJSON(&activity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if activity.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre es obligatorio"})
		return
	}
	activity.ID = 0
	activity.CompanyID = companyID(c)

	if err := config.DB.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la actividad"})
		return
	}
	c.JSON(http.StatusCreated, activity)
}

func UpdateActivityHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var activity models.Activity
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&activity, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Actividad no encontrada"})
		return
	}
	if err := c.ShouldBindJSON(&activity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	activity.ID = id
	activity.CompanyID = companyID(c)

	if err := config.DB.Save(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la actividad"})
		return
	}
	c.JSON(http.StatusOK, activity)
}

func DeleteActivityHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var activity models.Activity
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&activity, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Actividad no encontrada"})
		return
	}
	if err := config.DB.Delete(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la actividad"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Actividad eliminada"})
}
