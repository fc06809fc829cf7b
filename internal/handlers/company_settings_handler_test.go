package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanySettingsAutoCreate(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/company-settings", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["company_id"])
	assert.Empty(t, body["business_name"])
}

func TestCompanySettingsUpdate(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodPut, "/api/v1/company-settings", token, M{
		"business_name": "Oceano Scuba SAS",
		"nit":           "900123456-7",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Actualización parcial: el NIT sobrevive al segundo PUT.
	w = doJSON(t, r, http.MethodPut, "/api/v1/company-settings", token, M{
		"phone": "+57 300 000 0000",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "900123456-7", body["nit"])
	assert.Equal(t, "+57 300 000 0000", body["phone"])
}
