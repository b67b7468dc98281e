package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AsignarRequest struct {
	ChoferID  string   `json:"choferId"  validate:"required,uuid"`
	ClientIds []string `json:"clientIds" validate:"required,min=1,dive,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// AsignarResponse reports exactly what was accepted: Count is the number of
// rows actually inserted (duplicates suppressed), ClientIds the valid
// clientes found. The caller can diff against its request to see drops.
type AsignarResponse struct {
	Message   string   `json:"message"`
	Count     int      `json:"count"`
	ClientIds []string `json:"clientIds"`
}

type ClienteAsignado struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Ubicacion string `json:"ubicacion"`
	Status    string `json:"status"`
}

type MisAsignacionesResponse struct {
	Clientes []ClienteAsignado `json:"clientes"`
}

type AsignacionCountResponse struct {
	Count int64 `json:"count"`
}
