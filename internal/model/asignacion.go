package model

import (
	"time"

	"github.com/google/uuid"
)

// Asignacion links one chofer to one cliente to visit.
// Status: "assigned" | "done" — never transitions back.
//
// The unique index on (chofer_id, cliente_id) suppresses duplicate bulk
// inserts, but it also means a completed pair can never be re-assigned.
// That restriction is inherited behavior, kept on purpose.
type Asignacion struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChoferID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_chofer_cliente"`
	ClienteID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_chofer_cliente"`
	Status    StatusAsignacion `gorm:"type:varchar(20);not null;default:'assigned'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Usuario `gorm:"foreignKey:ClienteID"`
}

type StatusAsignacion string

const (
	AsignacionAssigned StatusAsignacion = "assigned"
	AsignacionDone     StatusAsignacion = "done"
)

func (Asignacion) TableName() string { return "asignaciones" }
