package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CheckInRequest doubles as the check-out body: both take an optional
// location and optional free-text notes.
type CheckInRequest struct {
	Ubicacion *string `json:"ubicacion"`
	Notas     *string `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// Duracion is the shift duration used everywhere:
// minutos = round(ms / 60000), formato = "{horas}h {minutos%60}m".
type Duracion struct {
	Minutos int    `json:"minutos"`
	Formato string `json:"formato"`
}

type JornadaResponse struct {
	ID                string     `json:"id"`
	ChoferID          string     `json:"choferId,omitempty"`
	CheckIn           time.Time  `json:"checkIn"`
	CheckOut          *time.Time `json:"checkOut"`
	UbicacionCheckIn  *string    `json:"ubicacionCheckIn"`
	UbicacionCheckOut *string    `json:"ubicacionCheckOut"`
	Notas             *string    `json:"notas"`
	// Duracion is nil while the jornada is still open.
	Duracion *Duracion `json:"duracion"`
}

type CheckInResponse struct {
	Message string          `json:"message"`
	Jornada JornadaResponse `json:"jornada"`
}

type CheckOutResponse struct {
	Message string          `json:"message"`
	Jornada JornadaResponse `json:"jornada"`
}

// JornadaActiva is the open-shift shape with live elapsed time.
type JornadaActiva struct {
	ID                 string    `json:"id"`
	CheckIn            time.Time `json:"checkIn"`
	UbicacionCheckIn   *string   `json:"ubicacionCheckIn"`
	Notas              *string   `json:"notas"`
	TiempoTranscurrido Duracion  `json:"tiempoTranscurrido"`
}

type MiJornadaResponse struct {
	Activa  bool           `json:"activa"`
	Jornada *JornadaActiva `json:"jornada"`
}

type HistorialResponse struct {
	Count    int               `json:"count"`
	Jornadas []JornadaResponse `json:"jornadas"`
}

type ChoferRef struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono,omitempty"`
}

type JornadaActivaAdmin struct {
	ID                 string    `json:"id"`
	Chofer             ChoferRef `json:"chofer"`
	CheckIn            time.Time `json:"checkIn"`
	UbicacionCheckIn   *string   `json:"ubicacionCheckIn"`
	TiempoTranscurrido Duracion  `json:"tiempoTranscurrido"`
}

type JornadasActivasResponse struct {
	Count           int                  `json:"count"`
	ChoferesActivos []JornadaActivaAdmin `json:"choferesActivos"`
}

// ResumenJornadas totals only closed jornadas into TiempoTotal.
type ResumenJornadas struct {
	TotalJornadas       int      `json:"totalJornadas"`
	JornadasCompletadas int      `json:"jornadasCompletadas"`
	TiempoTotal         Duracion `json:"tiempoTotal"`
}

type HistorialChoferResponse struct {
	Chofer   ChoferRef         `json:"chofer"`
	Resumen  ResumenJornadas   `json:"resumen"`
	Jornadas []JornadaResponse `json:"jornadas"`
}
