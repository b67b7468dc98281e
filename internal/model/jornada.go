package model

import (
	"time"

	"github.com/google/uuid"
)

// Jornada is one chofer work period. CheckOut == nil means the shift is
// still active; a chofer has at most one active jornada at a time.
// Check-out is terminal — a closed jornada is never re-opened.
type Jornada struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChoferID          uuid.UUID `gorm:"type:uuid;not null;index"`
	CheckIn           time.Time `gorm:"not null"`
	CheckOut          *time.Time
	UbicacionCheckIn  *string
	UbicacionCheckOut *string
	// Notas accumulates: check-out notes are appended newline-joined,
	// never overwriting check-in notes.
	Notas     *string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Chofer *Usuario `gorm:"foreignKey:ChoferID"`
}

func (Jornada) TableName() string { return "jornadas" }
