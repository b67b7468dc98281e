package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearUsuarioRequest is the admin-initiated variant of RegisterRequest:
// same profile but the role must be explicit.
type CrearUsuarioRequest struct {
	Email        string  `json:"email"    validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6"`
	Role         string  `json:"role"     validate:"required,oneof=admin chofer cliente"`
	Nombre       string  `json:"nombre"    validate:"required"`
	DNI          string  `json:"dni"       validate:"required"`
	CUIT         string  `json:"cuit"      validate:"required"`
	Telefono     string  `json:"telefono"  validate:"required"`
	Ubicacion    string  `json:"ubicacion" validate:"required"`
	RazonSocial  *string `json:"razonSocial"`
	TipoComercio *string `json:"tipoComercio"`
	Notas        *string `json:"notas"`
	Foto         *string `json:"foto"`
	Usuario      *string `json:"usuario"`
	CodigoArea   *string `json:"codigoArea"`
}

type ActualizarUsuarioRequest struct {
	Nombre       string  `json:"nombre"    validate:"omitempty,min=1"`
	DNI          string  `json:"dni"       validate:"omitempty,min=1"`
	CUIT         string  `json:"cuit"      validate:"omitempty,min=1"`
	Telefono     string  `json:"telefono"  validate:"omitempty,min=1"`
	Ubicacion    string  `json:"ubicacion" validate:"omitempty,min=1"`
	Role         string  `json:"role"      validate:"omitempty,oneof=admin chofer cliente"`
	RazonSocial  *string `json:"razonSocial"`
	TipoComercio *string `json:"tipoComercio"`
	Notas        *string `json:"notas"`
	Foto         *string `json:"foto"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioListResponse struct {
	Count int               `json:"count"`
	Users []UsuarioResponse `json:"users"`
}
