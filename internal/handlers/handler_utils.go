package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// companyID devuelve la compañía del usuario autenticado. El middleware
// garantiza que existe en el contexto para toda ruta protegida.
func companyID(c *gin.Context) uint {
	v, _ := c.Get("company_id")
	id, _ := v.(uint)
	return id
}

// parseID lee el parámetro :id de la ruta. Si no es numérico responde 400
// y devuelve ok=false.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return 0, false
	}
	return uint(id), true
}
