package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	r := setupServer(t)
	user := seedUser(t, "admin@oceanoscuba.com.co", uintPtr(1))

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", M{
		"email": user.Email, "password": "x",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	loggedUser := data["user"].(map[string]interface{})
	assert.Equal(t, user.Email, loggedUser["email"])
	// El hash de la contraseña nunca viaja en la respuesta.
	_, present := loggedUser["password_hash"]
	assert.False(t, present)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupServer(t)
	user := seedUser(t, "admin@oceanoscuba.com.co", uintPtr(1))

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", M{
		"email": user.Email, "password": "otra",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Credenciales inválidas", decodeBody(t, w)["error"])
}

func TestLoginWithoutCompany(t *testing.T) {
	r := setupServer(t)
	user := seedUser(t, "huerfano@oceanoscuba.com.co", nil)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", M{
		"email": user.Email, "password": "x",
	})

	require.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "El usuario no tiene una compañía asignada", body["error"])
	assert.Nil(t, body["data"])
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/categories", "", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token de autenticación no proporcionado", decodeBody(t, w)["error"])
}

func TestProtectedRouteWithGarbageToken(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/categories", "no-es-un-jwt", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	r := setupServer(t)
	user := seedUser(t, "admin@oceanoscuba.com.co", uintPtr(1))

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", tokenFor(t, user), nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, user.Email, data["email"])
}

