package models

import (
	"time"

	"gorm.io/gorm"
)

// User representa un usuario administrador del panel.
// CompanyID es un puntero: un usuario sin compañía asignada existe en la BD
// pero no puede iniciar sesión.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"column:password_hash" json:"-"`
	FullName     string `gorm:"column:full_name" json:"full_name"`
	Role         string `gorm:"column:role" json:"role"`

	CompanyID *uint `gorm:"column:company_id;index" json:"company_id"`
}

func (User) TableName() string { return "users" }
