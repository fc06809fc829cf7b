// oceanoscuba-admin/internal/handlers/auth_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse es la proyección pública del usuario que viaja en las
// respuestas de auth. Nunca incluye el hash de la contraseña.
type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	CompanyID *uint  `json:"company_id"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}
}

// LoginHandler valida credenciales y emite un JWT de 24 horas. Un usuario
// sin compañía asignada no recibe token: sin compañía no hay panel.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Correo y contraseña son obligatorios"})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}

	if user.CompanyID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "El usuario no tiene una compañía asignada"})
		return
	}

	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"company_id": *user.CompanyID,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(config.JwtKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token": tokenStr,
			"user":  toUserResponse(&user),
		},
	})
}

// MeHandler devuelve el usuario autenticado. La consulta lleva un plazo
// máximo de 10 segundos, igual que la verificación de sesión del panel.
func MeHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	userID, _ := c.Get("user_id")

	var user models.User
	if err := config.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "El usuario del token no existe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": toUserResponse(&user)})
}

// LogoutHandler invalida la sesión borrando los datos cacheados del usuario.
// El token JWT en sí expira solo; sin la entrada de caché el middleware
// vuelve a consultar la BD en el siguiente uso.
func LogoutHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")
	if config.RDB != nil {
		cacheKey := fmt.Sprintf("user:%v:data", userID)
		config.RDB.Del(config.Ctx, cacheKey)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sesión cerrada"})
}
