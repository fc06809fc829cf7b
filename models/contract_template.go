package models

import (
	"time"

	"gorm.io/gorm"
)

// Tipos de dato permitidos para una variable de plantilla.
const (
	VariableTypeText      = "TEXT"
	VariableTypeNumber    = "NUMBER"
	VariableTypeDate      = "DATE"
	VariableTypeSignature = "SIGNATURE"
	VariableTypeEmail     = "EMAIL"
)

// ContractTemplate es la plantilla HTML de un contrato. HTMLContent usa
// marcadores {{variable}} que se sustituyen al renderizar el contrato
// emitido. El SKU es único por compañía. Las plantillas no se eliminan
// desde el panel: se desactivan con IsActive.
type ContractTemplate struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID   uint   `gorm:"column:company_id;index;uniqueIndex:idx_templates_company_sku" json:"company_id"`
	Name        string `gorm:"column:name" json:"name"`
	Sku         string `gorm:"column:sku;uniqueIndex:idx_templates_company_sku" json:"sku"`
	Description string `gorm:"column:description" json:"description"`
	HTMLContent string `gorm:"column:html_content;type:text" json:"html_content"`
	IsActive    bool   `gorm:"column:is_active;default:true" json:"is_active"`

	Variables []TemplateVariable `gorm:"foreignKey:TemplateID" json:"variables"`
}

func (ContractTemplate) TableName() string { return "contract_templates" }

// TemplateVariable define un marcador de la plantilla y cómo capturarlo en
// el formulario de firma. SortOrder arranca en 1.
type TemplateVariable struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	TemplateID   uint   `gorm:"column:template_id;index" json:"template_id"`
	Key          string `gorm:"column:key" json:"key"`
	Label        string `gorm:"column:label" json:"label"`
	Description  string `gorm:"column:description" json:"description"`
	DataType     string `gorm:"column:data_type;default:TEXT" json:"data_type"`
	Required     bool   `gorm:"column:required" json:"required"`
	DefaultValue string `gorm:"column:default_value" json:"default_value"`
	SortOrder    int    `gorm:"column:sort_order" json:"sort_order"`
}

func (TemplateVariable) TableName() string { return "template_variables" }
