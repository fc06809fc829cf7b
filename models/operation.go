package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyOperation agrupa las salidas de un día desde una marina.
type DailyOperation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID     uint      `gorm:"column:company_id;index" json:"company_id"`
	OperationDate time.Time `gorm:"column:operation_date;index" json:"operation_date"`
	Status        string    `gorm:"column:status;default:PLANNED" json:"status"` // PLANNED | IN_PROGRESS | DONE | CANCELLED
	Notes         string    `gorm:"column:notes" json:"notes"`

	MarinaID *uint   `gorm:"column:marina_id;index" json:"marina_id"`
	Marina   *Marina `gorm:"foreignKey:MarinaID" json:"marina,omitempty"`

	Groups []OperationGroup `gorm:"foreignKey:DailyOperationID" json:"groups,omitempty"`
}

func (DailyOperation) TableName() string { return "daily_operations" }

// OperationGroup es una salida concreta dentro de la operación diaria:
// una embarcación, una actividad, una hora de zarpe y un cupo.
// Capacity en cero delega el cupo a la capacidad de la embarcación.
type OperationGroup struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	DailyOperationID uint   `gorm:"column:daily_operation_id;index" json:"daily_operation_id"`
	Name             string `gorm:"column:name" json:"name"`
	DepartureTime    string `gorm:"column:departure_time" json:"departure_time"`
	Capacity         int    `gorm:"column:capacity" json:"capacity"`

	VesselID   *uint     `gorm:"column:vessel_id;index" json:"vessel_id"`
	Vessel     *Vessel   `gorm:"foreignKey:VesselID" json:"vessel,omitempty"`
	ActivityID *uint     `gorm:"column:activity_id;index" json:"activity_id"`
	Activity   *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`

	Participants []OperationParticipant `gorm:"foreignKey:OperationGroupID" json:"participants,omitempty"`
}

func (OperationGroup) TableName() string { return "operation_groups" }

type OperationParticipant struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OperationGroupID uint   `gorm:"column:operation_group_id;index" json:"operation_group_id"`
	PersonID         uint   `gorm:"column:person_id;index" json:"person_id"`
	Status           string `gorm:"column:status;default:CONFIRMED" json:"status"` // CONFIRMED | WAITLIST | CANCELLED

	ContractID *uint     `gorm:"column:contract_id;index" json:"contract_id"`
	Person     *Person   `gorm:"foreignKey:PersonID" json:"person,omitempty"`
	Contract   *Contract `gorm:"foreignKey:ContractID" json:"contract,omitempty"`
}

func (OperationParticipant) TableName() string { return "operation_participants" }
