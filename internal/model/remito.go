package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductoRemito is one line item of a remito. Subtotal is always
// server-computed as Cantidad × Precio.
type ProductoRemito struct {
	Nombre   string          `json:"nombre"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ProductosRemito stores the line items as a JSONB column.
type ProductosRemito []ProductoRemito

func (p ProductosRemito) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *ProductosRemito) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return errors.New("productos: unsupported scan type")
}

// Remito is an immutable delivery receipt. No update or delete operation
// exists; totals are computed once at creation and never recomputed.
type Remito struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChoferID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fecha     time.Time       `gorm:"not null"`
	Productos ProductosRemito `gorm:"type:jsonb;not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// IVA is 21% of Subtotal, computed without intermediate rounding.
	IVA       decimal.Decimal `gorm:"column:iva;type:decimal(10,2);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Notas     *string         `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Usuario `gorm:"foreignKey:ClienteID"`
	Chofer  *Usuario `gorm:"foreignKey:ChoferID"`
}

func (Remito) TableName() string { return "remitos" }
