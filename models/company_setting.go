package models

import (
	"time"

	"gorm.io/gorm"
)

// CompanySetting guarda los datos fiscales y de marca de la compañía.
// Una fila por compañía; se crea vacía en la primera lectura.
type CompanySetting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID      uint   `gorm:"column:company_id;uniqueIndex" json:"company_id"`
	BusinessName   string `gorm:"column:business_name" json:"business_name"`
	Nit            string `gorm:"column:nit" json:"nit"`
	Address        string `gorm:"column:address" json:"address"`
	Phone          string `gorm:"column:phone" json:"phone"`
	Email          string `gorm:"column:email" json:"email"`
	LogoPath       string `gorm:"column:logo_path" json:"logo_path"`
	SigningBaseURL string `gorm:"column:signing_base_url" json:"signing_base_url"`
}

func (CompanySetting) TableName() string { return "company_settings" }
