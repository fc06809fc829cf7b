// oceanoscuba-admin/internal/handlers/storage_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"oceanoscuba-admin/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadFileHandler recibe un multipart con folder_path y file, guarda el
// archivo bajo el directorio de subidas con un código único y devuelve la
// ficha del archivo. folder_path no puede escapar de la raíz de subidas.
func UploadFileHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El archivo es obligatorio"})
		return
	}

	folderPath := strings.Trim(c.PostForm("folder_path"), "/")
	if folderPath == "" {
		folderPath = "general"
	}
	cleaned := filepath.Clean(folderPath)
	if cleaned == ".." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder_path inválido"})
		return
	}

	uploadDir := filepath.Join(config.UploadsDir(), cleaned)
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo preparar el directorio de subidas"})
		return
	}

	uniqueCode := uuid.NewString()
	newFileName := fmt.Sprintf("%s_%s", uniqueCode, filepath.Base(file.Filename))
	filePath := filepath.Join(uploadDir, newFileName)
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el archivo"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Archivo subido",
		"data": gin.H{
			"filename":      newFileName,
			"original_name": file.Filename,
			"path":          filePath,
			"unique_code":   uniqueCode,
			"url":           "/static/" + cleaned + "/" + newFileName,
		},
	})
}
