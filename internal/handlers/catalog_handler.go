// oceanoscuba-admin/internal/handlers/catalog_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- CATEGORÍAS ---

func ListCategoriesHandler(c *gin.Context) {
	var categories []models.Category
	var totalRows int64

	baseQuery := config.DB.Model(&models.Category{}).Where("company_id = ?", companyID(c))

	if search := c.Query("search"); search != "" {
		baseQuery = baseQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if c.Query("all") == "true" {
		if err := baseQuery.Order("name").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de categorías"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": categories})
		return
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar las categorías"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de categorías"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, categories, totalRows))
}

func GetCategoryHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var category models.Category
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Categoría no encontrada"})
		return
	}
	c.JSON(http.StatusOK, category)
}

func CreateCategoryHandler(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if category.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre es obligatorio"})
		return
	}
	category.ID = 0
	category.CompanyID = companyID(c)

	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la categoría"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func UpdateCategoryHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var category models.Category
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Categoría no encontrada"})
		return
	}

	// Actualización parcial: el JSON solo pisa los campos presentes.
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	category.ID = id
	category.CompanyID = companyID(c)

	if err := config.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la categoría"})
		return
	}
	c.JSON(http.StatusOK, category)
}

func DeleteCategoryHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var category models.Category
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Categoría no encontrada"})
		return
	}
	if err := config.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la categoría"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Categoría eliminada"})
}

// --- SUBCATEGORÍAS ---

func ListSubcategoriesHandler(c *gin.Context) {
	var subcategories []models.Subcategory
	var totalRows int64

	baseQuery := config.DB.Model(&models.Subcategory{}).Where("company_id = ?", companyID(c))
	if catID := c.Query("category_id"); catID != "" {
		baseQuery = baseQuery.Where("category_id = ?", catID)
	}
	if search := c.Query("search"); search != "" {
		baseQuery = baseQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if c.Query("all") == "true" {
		if err := baseQuery.Order("name").Find(&subcategories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de subcategorías"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": subcategories})
		return
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar las subcategorías"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).Preload("Category").Order("name").Find(&subcategories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de subcategorías"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, subcategories, totalRows))
}

func GetSubcategoryHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var subcategory models.Subcategory
	if err := config.DB.Preload("Category").Where("company_id = ?", companyID(c)).First(&subcategory, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategoría no encontrada"})
		return
	}
	c.JSON(http.StatusOK, subcategory)
}

func CreateSubcategoryHandler(c *gin.Context) {
	var subcategory models.Subcategory
	if err := c.ShouldBindJSON(&subcategory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if subcategory.Name == "" || subcategory.CategoryID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre y categoría son obligatorios"})
		return
	}
	subcategory.ID = 0
	subcategory.CompanyID = companyID(c)
	subcategory.Category = nil

	if err := config.DB.Create(&subcategory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la subcategoría"})
		return
	}
	c.JSON(http.StatusCreated, subcategory)
}

func UpdateSubcategoryHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var subcategory models.Subcategory
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&subcategory, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategoría no encontrada"})
		return
	}
	if err := c.ShouldBindJSON(&subcategory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	subcategory.ID = id
	subcategory.CompanyID = companyID(c)
	subcategory.Category = nil

	if err := config.DB.Save(&subcategory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la subcategoría"})
		return
	}
	c.JSON(http.StatusOK, subcategory)
}

func DeleteSubcategoryHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var subcategory models.Subcategory
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&subcategory, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategoría no encontrada"})
		return
	}
	if err := config.DB.Delete(&subcategory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la subcategoría"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subcategoría eliminada"})
}

// --- PRODUCTOS ---

func ListProductsHandler(c *gin.Context) {
	var products []models.Product
	var totalRows int64

	baseQuery := config.DB.Model(&models.Product{}).Where("company_id = ?", companyID(c))
	if catID := c.Query("category_id"); catID != "" {
		baseQuery = baseQuery.Where("category_id = ?", catID)
	}
	if zoneID := c.Query("zone_id"); zoneID != "" {
		baseQuery = baseQuery.Where("zone_id = ?", zoneID)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}

	if c.Query("all") == "true" {
		if err := baseQuery.Order("name").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de productos"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": products})
		return
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar los productos"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).
		Preload("Category").Preload("Subcategory").Preload("Zone").
		Order("name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de productos"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, products, totalRows))
}

func GetProductHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var product models.Product
	if err := config.DB.Preload("Category").Preload("Subcategory").Preload("Zone").
		Where("company_id = ?", companyID(c)).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el producto", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

func CreateProductHandler(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if product.Name == "" || product.Sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre y SKU son obligatorios"})
		return
	}
	product.ID = 0
	product.CompanyID = companyID(c)
	product.Category, product.Subcategory, product.Zone = nil, nil, nil

	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el producto"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func UpdateProductHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var product models.Product
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	product.ID = id
	product.CompanyID = companyID(c)
	product.Category, product.Subcategory, product.Zone = nil, nil, nil

	if err := config.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el producto"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func DeleteProductHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var product models.Product
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}
	if err := config.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el producto"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado"})
}

type ProductAssociationInput struct {
	CategoryID    *uint `json:"category_id"`
	SubcategoryID *uint `json:"subcategory_id"`
	ZoneID        *uint `json:"zone_id"`
}

// UpdateProductAssociationsHandler actualiza las asociaciones de un producto
// (categoría, subcategoría, zona) usando el id del PRODUCTO como clave.
func UpdateProductAssociationsHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var product models.Product
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	var input ProductAssociationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}

	product.CategoryID = input.CategoryID
	product.SubcategoryID = input.SubcategoryID
	product.ZoneID = input.ZoneID

	if err := config.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron actualizar las asociaciones"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- ZONAS ---

func ListZonesHandler(c *gin.Context) {
	var zones []models.Zone
	var totalRows int64

	baseQuery := config.DB.Model(&models.Zone{}).Where("company_id = ?", companyID(c))
	if search := c.Query("search"); search != "" {
		baseQuery = baseQuery.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if c.Query("all") == "true" {
		if err := baseQuery.Order("name").Find(&zones).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de zonas"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": zones})
		return
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar las zonas"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).Order("name").Find(&zones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de zonas"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, zones, totalRows))
}

func GetZoneHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var zone models.Zone
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&zone, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zona no encontrada"})
		return
	}
	c.JSON(http.StatusOK, zone)
}

func CreateZoneHandler(c *gin.Context) {
	var zone models.Zone
	if err := c.ShouldBindJSON(&zone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if zone.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El nombre es obligatorio"})
		return
	}
	zone.ID = 0
	zone.CompanyID = companyID(c)

	if err := config.DB.Create(&zone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la zona"})
		return
	}
	c.JSON(http.StatusCreated, zone)
}

func UpdateZoneHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var zone models.Zone
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&zone, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zona no encontrada"})
		return
	}
	if err := c.ShouldBindJSON(&zone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	zone.ID = id
	zone.CompanyID = companyID(c)

	if err := config.DB.Save(&zone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la zona"})
		return
	}
	c.JSON(http.StatusOK, zone)
}

func DeleteZoneHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var zone models.Zone
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&zone, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Zona no encontrada"})
		return
	}
	if err := config.DB.Delete(&zone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la zona"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Zona eliminada"})
}

// --- BANNERS ---

func ListBannersHandler(c *gin.Context) {
	var banners []models.Banner
	var totalRows int64

	baseQuery := config.DB.Model(&models.Banner{}).Where("company_id = ?", companyID(c))
	if search := c.Query("search"); search != "" {
		baseQuery = baseQuery.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if c.Query("all") == "true" {
		if err := baseQuery.Order("sort_order").Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de banners"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": banners})
		return
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar los banners"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).Order("sort_order").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de banners"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, banners, totalRows))
}

func GetBannerHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var banner models.Banner
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&banner, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner no encontrado"})
		return
	}
	c.JSON(http.StatusOK, banner)
}

func CreateBannerHandler(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if banner.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El título es obligatorio"})
		return
	}
	banner.ID = 0
	banner.CompanyID = companyID(c)

	if err := config.DB.Create(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el banner"})
		return
	}
	c.JSON(http.StatusCreated, banner)
}

func UpdateBannerHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var banner models.Banner
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&banner, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner no encontrado"})
		return
	}
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	banner.ID = id
	banner.CompanyID = companyID(c)

	if err := config.DB.Save(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el banner"})
		return
	}
	c.JSON(http.StatusOK, banner)
}

func DeleteBannerHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var banner models.Banner
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&banner, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner no encontrado"})
		return
	}
	if err := config.DB.Delete(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner eliminado"})
}
