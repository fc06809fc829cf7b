package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/internal/routes"
	"oceanoscuba-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.JwtKey = []byte("clave-de-prueba")
	os.Exit(m.Run())
}

// setupServer crea una BD sqlite aislada, la engancha al paquete config y
// devuelve el router completo del servicio.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))

	config.DB = db
	config.RDB = nil
	t.Setenv("UPLOADS_DIR", t.TempDir())

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

// setupAuthed levanta el servidor con un usuario de la compañía 1 ya
// autenticado.
func setupAuthed(t *testing.T) (*gin.Engine, string) {
	r := setupServer(t)
	user := seedUser(t, "admin@oceanoscuba.com.co", uintPtr(1))
	return r, tokenFor(t, user)
}

func seedUser(t *testing.T, email string, companyID *uint) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("x"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Admin de Prueba",
		Role:         "admin",
		CompanyID:    companyID,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	if user.CompanyID != nil {
		claims["company_id"] = *user.CompanyID
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JwtKey)
	require.NoError(t, err)
	return tokenStr
}

// doJSON ejecuta una petición JSON contra el router. Un token vacío omite
// la cabecera Authorization.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func uintPtr(v uint) *uint { return &v }

// M abrevia los cuerpos JSON de las peticiones de prueba.
type M = map[string]interface{}
