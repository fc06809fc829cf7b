package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Estados del ciclo de vida de un contrato emitido. El avance es monótono
// (DRAFT → PENDING_SIGN → SIGNED) salvo la invalidación explícita y la
// expiración del barrido periódico.
const (
	ContractStatusDraft       = "DRAFT"
	ContractStatusPendingSign = "PENDING_SIGN"
	ContractStatusSigned      = "SIGNED"
	ContractStatusExpired     = "EXPIRED"
	ContractStatusCancelled   = "CANCELLED"
)

// Contract es una instancia emitida de una plantilla. HTMLSnapshot congela
// el HTML de la plantilla al momento de la emisión; los cambios posteriores
// de la plantilla no afectan contratos ya emitidos. AccessToken permite la
// firma pública sin autenticación.
type Contract struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID  uint   `gorm:"column:company_id;index;uniqueIndex:idx_contracts_company_code" json:"company_id"`
	TemplateID uint   `gorm:"column:template_id;index" json:"template_id"`
	Sku        string `gorm:"column:sku" json:"sku"`
	// El consecutivo se reinicia por compañía; la unicidad del código es
	// compuesta con company_id.
	Code string `gorm:"column:code;uniqueIndex:idx_contracts_company_code" json:"code"`

	AccessToken string `gorm:"column:access_token;uniqueIndex" json:"access_token"`
	Status      string `gorm:"column:status;default:PENDING_SIGN;index" json:"status"`

	HTMLSnapshot string `gorm:"column:html_snapshot;type:text" json:"html_snapshot,omitempty"`
	PDFPath      string `gorm:"column:pdf_path" json:"pdf_path"`

	// Entidad opcional a la que pertenece el contrato (p. ej. una reserva
	// o un participante de operación).
	RelatedType string `gorm:"column:related_type" json:"related_type"`
	RelatedID   *uint  `gorm:"column:related_id" json:"related_id"`

	SignedByName  string     `gorm:"column:signed_by_name" json:"signed_by_name"`
	SignedByEmail string     `gorm:"column:signed_by_email" json:"signed_by_email"`
	SignedAt      *time.Time `gorm:"column:signed_at" json:"signed_at"`

	// Conjunto plano de atributos del firmante, información general y
	// contacto de emergencia, más claves arbitrarias de la plantilla.
	Fields datatypes.JSON `gorm:"column:fields" json:"fields"`

	ExpiresAt *time.Time `gorm:"column:expires_at;index" json:"expires_at"`

	Template *ContractTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
}

func (Contract) TableName() string { return "contracts" }

// Signable indica si el contrato todavía admite una firma.
func (ct *Contract) Signable() bool {
	return ct.Status == ContractStatusDraft || ct.Status == ContractStatusPendingSign
}
