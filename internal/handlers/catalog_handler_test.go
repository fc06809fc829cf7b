package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/categories", token, M{
		"name": "Cursos", "slug": "cursos", "is_active": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	// Actualización parcial: solo viaja el nombre, el slug se conserva.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/categories/%.0f", id), token, M{
		"name": "Cursos PADI",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Cursos PADI", body["name"])
	assert.Equal(t, "cursos", body["slug"])

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%.0f", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/categories/%.0f", id), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryNameRequired(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/categories", token, M{"slug": "sin-nombre"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "El nombre es obligatorio", decodeBody(t, w)["error"])
}

func TestCategoryInvalidID(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/categories/abc", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ID inválido", decodeBody(t, w)["error"])
}

// Cada compañía solo ve lo suyo, aunque el id exista.
func TestCategoryTenantIsolation(t *testing.T) {
	r, token := setupAuthed(t)

	ajena := models.Category{CompanyID: 2, Name: "Ajena"}
	require.NoError(t, config.DB.Create(&ajena).Error)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/categories/%d", ajena.ID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/categories?all=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["data"])
}

func TestCategoryPagination(t *testing.T) {
	r, token := setupAuthed(t)

	for i := 0; i < 25; i++ {
		cat := models.Category{CompanyID: 1, Name: fmt.Sprintf("Categoría %02d", i)}
		require.NoError(t, config.DB.Create(&cat).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/categories?page=2&pageSize=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(25), body["totalRows"])
	assert.Equal(t, float64(3), body["totalPages"])
	assert.Equal(t, float64(2), body["currentPage"])
	assert.Len(t, body["data"].([]interface{}), 10)
}

func TestCategorySearch(t *testing.T) {
	r, token := setupAuthed(t)

	for _, name := range []string{"Cursos", "Inmersiones", "Paquetes"} {
		cat := models.Category{CompanyID: 1, Name: name}
		require.NoError(t, config.DB.Create(&cat).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/categories?all=true&search=curso", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Cursos", data[0].(map[string]interface{})["name"])
}

func TestProductAssociations(t *testing.T) {
	r, token := setupAuthed(t)

	category := models.Category{CompanyID: 1, Name: "Cursos"}
	require.NoError(t, config.DB.Create(&category).Error)
	zone := models.Zone{CompanyID: 1, Name: "Taganga"}
	require.NoError(t, config.DB.Create(&zone).Error)
	product := models.Product{CompanyID: 1, Name: "Open Water", Sku: "OW-01", Price: 1500000}
	require.NoError(t, config.DB.Create(&product).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/products/%d/associations", product.ID), token, M{
		"category_id": category.ID, "zone_id": zone.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(category.ID), body["category_id"])
	assert.Equal(t, float64(zone.ID), body["zone_id"])
	assert.Nil(t, body["subcategory_id"])
}
