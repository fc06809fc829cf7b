package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFile(t *testing.T, r *gin.Engine, token, folderPath string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if folderPath != "" {
		require.NoError(t, writer.WriteField("folder_path", folderPath))
	}
	part, err := writer.CreateFormFile("file", "waiver.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 contenido de prueba"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/storage/files", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadFile(t *testing.T) {
	r, token := setupAuthed(t)

	w := uploadFile(t, r, token, "contracts/adjuntos")

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "waiver.pdf", data["original_name"])
	assert.NotEmpty(t, data["unique_code"])
	assert.Contains(t, data["url"], "/static/contracts/adjuntos/")

	// El archivo quedó en disco con el código único como prefijo.
	savedPath := data["path"].(string)
	assert.Contains(t, filepath.Base(savedPath), data["unique_code"].(string))
	content, err := os.ReadFile(savedPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "contenido de prueba")
}

func TestUploadFileDefaultFolder(t *testing.T) {
	r, token := setupAuthed(t)

	w := uploadFile(t, r, token, "")

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Contains(t, data["url"], "/static/general/")
}

func TestUploadFileRejectsTraversal(t *testing.T) {
	r, token := setupAuthed(t)

	for _, folder := range []string{"..", "../fuera", "adjuntos/../../fuera"} {
		w := uploadFile(t, r, token, folder)
		require.Equal(t, http.StatusBadRequest, w.Code, "folder_path %q", folder)
		assert.Equal(t, "folder_path inválido", decodeBody(t, w)["error"])
	}
}

func TestUploadFileMissingFile(t *testing.T) {
	r, token := setupAuthed(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("folder_path", "adjuntos"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/storage/files", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
