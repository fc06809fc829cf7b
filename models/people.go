package models

import (
	"time"

	"gorm.io/gorm"
)

// Person cubre tanto tripulación (guías, capitanes) como clientes. El campo
// Kind distingue el uso; no hay tablas separadas.
type Person struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID      uint   `gorm:"column:company_id;index" json:"company_id"`
	FirstName      string `gorm:"column:first_name" json:"first_name"`
	LastName       string `gorm:"column:last_name" json:"last_name"`
	Kind           string `gorm:"column:kind;default:CLIENT" json:"kind"` // CLIENT | CREW
	IdentityType   string `gorm:"column:identity_type" json:"identity_type"`
	IdentityNumber string `gorm:"column:identity_number" json:"identity_number"`
	Email          string `gorm:"column:email" json:"email"`
	Phone          string `gorm:"column:phone" json:"phone"`
	Certification  string `gorm:"column:certification" json:"certification"`
	IsActive       bool   `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Person) TableName() string { return "people" }

// Activity es el tipo de salida operada: inmersión, minicurso, snorkel, etc.
type Activity struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID   uint   `gorm:"column:company_id;index" json:"company_id"`
	Name        string `gorm:"column:name" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	IsActive    bool   `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Activity) TableName() string { return "activities" }
