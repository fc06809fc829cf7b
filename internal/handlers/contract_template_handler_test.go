package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templatePayload(sku string) M {
	return M{
		"name":         "Exoneración de responsabilidad",
		"sku":          sku,
		"html_content": "<p>Yo, {{signer_name}}, acepto. Contacto: {{emergency_contact}}</p>",
		"variables": []M{
			{"key": "signer_name", "label": "Nombre completo", "required": true},
			{"key": "emergency_contact", "label": "Contacto de emergencia"},
		},
	}
}

func TestCreateTemplateAssignsSortOrder(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/contracts/templates", token, templatePayload("WAIVER-01"))

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	variables := body["variables"].([]interface{})
	require.Len(t, variables, 2)
	first := variables[0].(map[string]interface{})
	second := variables[1].(map[string]interface{})
	assert.Equal(t, float64(1), first["sort_order"])
	assert.Equal(t, float64(2), second["sort_order"])
	assert.Equal(t, "TEXT", first["data_type"])
}

func TestCreateTemplateDuplicateSku(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/contracts/templates", token, templatePayload("WAIVER-01"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/contracts/templates", token, templatePayload("WAIVER-01"))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Ya existe una plantilla con ese SKU", decodeBody(t, w)["error"])
}

func TestCreateTemplateMissingFields(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/contracts/templates", token, M{
		"name": "Sin HTML", "sku": "WAIVER-02",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTemplateInvalidVariableType(t *testing.T) {
	r, token := setupAuthed(t)

	payload := templatePayload("WAIVER-03")
	payload["variables"] = []M{{"key": "edad", "data_type": "BOOLEAN"}}
	w := doJSON(t, r, http.MethodPost, "/api/v1/contracts/templates", token, payload)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTemplateReplacesVariables(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/contracts/templates", token, templatePayload("WAIVER-01"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/contracts/templates/%.0f", id), token, M{
		"variables": []M{{"key": "blood_type", "label": "Tipo de sangre"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/contracts/templates/%.0f", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	variables := decodeBody(t, w)["variables"].([]interface{})
	require.Len(t, variables, 1)
	assert.Equal(t, "blood_type", variables[0].(map[string]interface{})["key"])
}

func TestUpdateTemplatePartial(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/contracts/templates", token, templatePayload("WAIVER-01"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/contracts/templates/%.0f", id), token, M{
		"name": "Exoneración v2",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Exoneración v2", body["name"])
	assert.Equal(t, "WAIVER-01", body["sku"])
}
