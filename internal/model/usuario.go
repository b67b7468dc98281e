package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rol is the closed set of user roles. Every branch on role must handle
// exactly these three values.
type Rol string

const (
	RolAdmin   Rol = "admin"
	RolChofer  Rol = "chofer"
	RolCliente Rol = "cliente"
)

// Valida reports whether r is one of the three known roles.
func (r Rol) Valida() bool {
	switch r {
	case RolAdmin, RolChofer, RolCliente:
		return true
	}
	return false
}

// StatusCliente is the visitation lifecycle of a cliente.
// disponible → asignado (bulk assign) → visitado (remito created).
type StatusCliente string

const (
	StatusDisponible StatusCliente = "disponible"
	StatusAsignado   StatusCliente = "asignado"
	StatusVisitado   StatusCliente = "visitado"
)

// Usuario stores every account: admins, choferes and clientes.
// Status is only meaningful for Rol == cliente.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Rol          Rol       `gorm:"type:varchar(20);not null;default:'cliente'"`
	Nombre       string    `gorm:"not null"`
	DNI          string    `gorm:"column:dni;uniqueIndex;not null"`
	// CUIT format: DD-DDDDDDDD-D
	CUIT         string `gorm:"column:cuit;uniqueIndex;not null"`
	Telefono     string `gorm:"not null"`
	Ubicacion    string `gorm:"not null"`
	RazonSocial  *string
	TipoComercio *string
	Notas        *string
	Foto         *string
	Usuario      *string
	CodigoArea   *string
	Status       StatusCliente `gorm:"type:varchar(20);default:'disponible'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	// DeletedAt soft-deletes the row; all default reads exclude non-null values.
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Usuario) TableName() string { return "usuarios" }
