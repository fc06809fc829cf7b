package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware replica la frontera permisiva del panel: cualquier origen,
// y las peticiones OPTIONS responden 200 sin tocar los handlers.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
