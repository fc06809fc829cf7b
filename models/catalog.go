package models

import (
	"time"

	"gorm.io/gorm"
)

// Category agrupa productos del catálogo (cursos, inmersiones, paquetes).
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint   `gorm:"column:company_id;index" json:"company_id"`
	Name      string `gorm:"column:name" json:"name"`
	Slug      string `gorm:"column:slug" json:"slug"`
	ImagePath string `gorm:"column:image_path" json:"image_path"`
	IsActive  bool   `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Category) TableName() string { return "categories" }

type Subcategory struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID  uint   `gorm:"column:company_id;index" json:"company_id"`
	CategoryID uint   `gorm:"column:category_id;index" json:"category_id"`
	Name       string `gorm:"column:name" json:"name"`
	IsActive   bool   `gorm:"column:is_active;default:true" json:"is_active"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Subcategory) TableName() string { return "subcategories" }

// Product es una oferta vendible: curso, inmersión guiada, alquiler, etc.
type Product struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID     uint    `gorm:"column:company_id;index" json:"company_id"`
	Name          string  `gorm:"column:name" json:"name"`
	Sku           string  `gorm:"column:sku" json:"sku"`
	Description   string  `gorm:"column:description" json:"description"`
	Price         float64 `gorm:"column:price" json:"price"`
	Currency      string  `gorm:"column:currency;default:COP" json:"currency"`
	ImagePath     string  `gorm:"column:image_path" json:"image_path"`
	IsActive      bool    `gorm:"column:is_active;default:true" json:"is_active"`
	CategoryID    *uint   `gorm:"column:category_id;index" json:"category_id"`
	SubcategoryID *uint   `gorm:"column:subcategory_id;index" json:"subcategory_id"`
	ZoneID        *uint   `gorm:"column:zone_id;index" json:"zone_id"`

	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	Zone        *Zone        `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
}

func (Product) TableName() string { return "products" }

// Zone es una zona geográfica de buceo (p. ej. Isla Fuerte, Taganga).
type Zone struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID   uint    `gorm:"column:company_id;index" json:"company_id"`
	Name        string  `gorm:"column:name" json:"name"`
	Description string  `gorm:"column:description" json:"description"`
	Latitude    float64 `gorm:"column:latitude" json:"latitude"`
	Longitude   float64 `gorm:"column:longitude" json:"longitude"`
	IsActive    bool    `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Zone) TableName() string { return "zones" }

type Banner struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint   `gorm:"column:company_id;index" json:"company_id"`
	Title     string `gorm:"column:title" json:"title"`
	ImagePath string `gorm:"column:image_path" json:"image_path"`
	LinkURL   string `gorm:"column:link_url" json:"link_url"`
	SortOrder int    `gorm:"column:sort_order" json:"sort_order"`
	IsActive  bool   `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Banner) TableName() string { return "banners" }
