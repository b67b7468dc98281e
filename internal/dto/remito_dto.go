package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Juanarielok/prototipoR1-backend/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ProductoRequest struct {
	Nombre   string          `json:"nombre"   validate:"required"`
	Cantidad int             `json:"cantidad" validate:"required,gt=0"`
	Precio   decimal.Decimal `json:"precio"   validate:"required"`
}

type CrearRemitoRequest struct {
	ClienteID string            `json:"clienteId" validate:"required,uuid"`
	Productos []ProductoRequest `json:"productos" validate:"required,min=1,dive"`
	Notas     *string           `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RemitoResponse struct {
	ID        string                 `json:"id"`
	ClienteID string                 `json:"clienteId"`
	ChoferID  string                 `json:"choferId"`
	Fecha     time.Time              `json:"fecha"`
	Productos []model.ProductoRemito `json:"productos"`
	Subtotal  decimal.Decimal        `json:"subtotal"`
	IVA       decimal.Decimal        `json:"iva"`
	Total     decimal.Decimal        `json:"total"`
	Notas     *string                `json:"notas,omitempty"`
}

// CrearRemitoResponse reports the receipt together with the two status
// transitions the same transaction performed.
type CrearRemitoResponse struct {
	Message    string           `json:"message"`
	Remito     RemitoResponse   `json:"remito"`
	Assignment AssignmentStatus `json:"assignment"`
	Cliente    ClienteStatus    `json:"cliente"`
}

type AssignmentStatus struct {
	Status string `json:"status"`
}

type ClienteStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ClienteRemito struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	CUIT      string `json:"cuit,omitempty"`
	Ubicacion string `json:"ubicacion,omitempty"`
}

type RemitoDetalle struct {
	RemitoResponse
	Cliente *ClienteRemito `json:"cliente,omitempty"`
	Chofer  *ChoferRef     `json:"chofer,omitempty"`
}

type RemitoDetalleResponse struct {
	Remito RemitoDetalle `json:"remito"`
}

type RemitoListResponse struct {
	Count   int             `json:"count"`
	Remitos []RemitoDetalle `json:"remitos"`
}
