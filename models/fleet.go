package models

import (
	"time"

	"gorm.io/gorm"
)

// Vessel es una embarcación de la operadora. Capacity limita el número de
// participantes de un grupo cuando el grupo no define cupo propio.
type Vessel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID    uint   `gorm:"column:company_id;index" json:"company_id"`
	Name         string `gorm:"column:name" json:"name"`
	Registration string `gorm:"column:registration" json:"registration"`
	Capacity     int    `gorm:"column:capacity" json:"capacity"`
	IsActive     bool   `gorm:"column:is_active;default:true" json:"is_active"`

	MarinaID *uint   `gorm:"column:marina_id;index" json:"marina_id"`
	Marina   *Marina `gorm:"foreignKey:MarinaID" json:"marina,omitempty"`
}

func (Vessel) TableName() string { return "vessels" }

type Marina struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint    `gorm:"column:company_id;index" json:"company_id"`
	Name      string  `gorm:"column:name" json:"name"`
	Address   string  `gorm:"column:address" json:"address"`
	Latitude  float64 `gorm:"column:latitude" json:"latitude"`
	Longitude float64 `gorm:"column:longitude" json:"longitude"`
	IsActive  bool    `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Marina) TableName() string { return "marinas" }
