package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	// Role defaults to "cliente" when omitted.
	Role         string  `json:"role"      validate:"omitempty,oneof=admin chofer cliente"`
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

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioResponse is the public shape of a Usuario. The password hash is
// never part of any response.
type UsuarioResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Nombre       string  `json:"nombre"`
	DNI          string  `json:"dni"`
	CUIT         string  `json:"cuit"`
	Telefono     string  `json:"telefono"`
	Ubicacion    string  `json:"ubicacion"`
	RazonSocial  *string `json:"razonSocial,omitempty"`
	TipoComercio *string `json:"tipoComercio,omitempty"`
	Notas        *string `json:"notas,omitempty"`
	Foto         *string `json:"foto,omitempty"`
	Usuario      *string `json:"usuario,omitempty"`
	CodigoArea   *string `json:"codigoArea,omitempty"`
	Status       string  `json:"status,omitempty"`
}

type AuthResponse struct {
	Message string          `json:"message"`
	User    UsuarioResponse `json:"user"`
	Token   string          `json:"token"`
}

// MeResponse echoes the authenticated identity decoded from the token.
type MeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
