package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/model"
	"github.com/Juanarielok/prototipoR1-backend/internal/repository"
)

const historialLimiteDefault = 30

type JornadaService interface {
	CheckIn(ctx context.Context, choferID uuid.UUID, req dto.CheckInRequest) (*dto.CheckInResponse, error)
	CheckOut(ctx context.Context, choferID uuid.UUID, req dto.CheckInRequest) (*dto.CheckOutResponse, error)
	MiJornada(ctx context.Context, choferID uuid.UUID) (*dto.MiJornadaResponse, error)
	MiHistorial(ctx context.Context, choferID uuid.UUID, limite int) (*dto.HistorialResponse, error)
	Activas(ctx context.Context) (*dto.JornadasActivasResponse, error)
	// HistorialChofer filters by check-in date only when both bounds are
	// given; a single bound is ignored entirely, never partially applied.
	HistorialChofer(ctx context.Context, choferID uuid.UUID, limite int, desde, hasta *time.Time) (*dto.HistorialChoferResponse, error)
}

type jornadaService struct {
	repo        repository.JornadaRepository
	usuarioRepo repository.UsuarioRepository
}

func NewJornadaService(repo repository.JornadaRepository, usuarioRepo repository.UsuarioRepository) JornadaService {
	return &jornadaService{repo: repo, usuarioRepo: usuarioRepo}
}

func (s *jornadaService) CheckIn(ctx context.Context, choferID uuid.UUID, req dto.CheckInRequest) (*dto.CheckInResponse, error) {
	if _, err := s.repo.FindActivaByChofer(ctx, choferID); err == nil {
		return nil, apierror.NewValidation("Ya tenés una jornada activa. Hacé check-out primero.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("check-in: active lookup failed")
		return nil, apierror.NewInternal()
	}

	jornada := &model.Jornada{
		ChoferID:         choferID,
		CheckIn:          time.Now(),
		UbicacionCheckIn: req.Ubicacion,
		Notas:            req.Notas,
	}
	if err := s.repo.Create(ctx, jornada); err != nil {
		log.Error().Err(err).Msg("check-in: insert failed")
		return nil, apierror.NewInternal()
	}

	return &dto.CheckInResponse{
		Message: "Check-in exitoso",
		Jornada: jornadaToResponse(jornada),
	}, nil
}

func (s *jornadaService) CheckOut(ctx context.Context, choferID uuid.UUID, req dto.CheckInRequest) (*dto.CheckOutResponse, error) {
	jornada, err := s.repo.FindActivaByChofer(ctx, choferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewValidation("No tenés una jornada activa. Hacé check-in primero.")
		}
		log.Error().Err(err).Msg("check-out: active lookup failed")
		return nil, apierror.NewInternal()
	}

	checkOut := time.Now()
	jornada.CheckOut = &checkOut
	jornada.UbicacionCheckOut = req.Ubicacion
	jornada.Notas = appendNotas(jornada.Notas, req.Notas)

	if err := s.repo.Update(ctx, jornada); err != nil {
		log.Error().Err(err).Msg("check-out: update failed")
		return nil, apierror.NewInternal()
	}

	return &dto.CheckOutResponse{
		Message: "Check-out exitoso",
		Jornada: jornadaToResponse(jornada),
	}, nil
}

func (s *jornadaService) MiJornada(ctx context.Context, choferID uuid.UUID) (*dto.MiJornadaResponse, error) {
	jornada, err := s.repo.FindActivaByChofer(ctx, choferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.MiJornadaResponse{Activa: false, Jornada: nil}, nil
		}
		log.Error().Err(err).Msg("mi jornada: lookup failed")
		return nil, apierror.NewInternal()
	}

	return &dto.MiJornadaResponse{
		Activa: true,
		Jornada: &dto.JornadaActiva{
			ID:                 jornada.ID.String(),
			CheckIn:            jornada.CheckIn,
			UbicacionCheckIn:   jornada.UbicacionCheckIn,
			Notas:              jornada.Notas,
			TiempoTranscurrido: calcularDuracion(jornada.CheckIn, time.Now()),
		},
	}, nil
}

func (s *jornadaService) MiHistorial(ctx context.Context, choferID uuid.UUID, limite int) (*dto.HistorialResponse, error) {
	if limite <= 0 {
		limite = historialLimiteDefault
	}
	jornadas, err := s.repo.ListByChofer(ctx, choferID, limite, nil, nil)
	if err != nil {
		log.Error().Err(err).Msg("mi historial: query failed")
		return nil, apierror.NewInternal()
	}

	resp := &dto.HistorialResponse{
		Count:    len(jornadas),
		Jornadas: make([]dto.JornadaResponse, 0, len(jornadas)),
	}
	for i := range jornadas {
		resp.Jornadas = append(resp.Jornadas, jornadaToResponse(&jornadas[i]))
	}
	return resp, nil
}

func (s *jornadaService) Activas(ctx context.Context) (*dto.JornadasActivasResponse, error) {
	jornadas, err := s.repo.ListActivas(ctx)
	if err != nil {
		log.Error().Err(err).Msg("jornadas activas: query failed")
		return nil, apierror.NewInternal()
	}

	ahora := time.Now()
	activos := make([]dto.JornadaActivaAdmin, 0, len(jornadas))
	for _, j := range jornadas {
		var chofer dto.ChoferRef
		if j.Chofer != nil {
			chofer = dto.ChoferRef{
				ID:       j.Chofer.ID.String(),
				Nombre:   j.Chofer.Nombre,
				Telefono: j.Chofer.Telefono,
			}
		}
		activos = append(activos, dto.JornadaActivaAdmin{
			ID:                 j.ID.String(),
			Chofer:             chofer,
			CheckIn:            j.CheckIn,
			UbicacionCheckIn:   j.UbicacionCheckIn,
			TiempoTranscurrido: calcularDuracion(j.CheckIn, ahora),
		})
	}
	return &dto.JornadasActivasResponse{Count: len(activos), ChoferesActivos: activos}, nil
}

func (s *jornadaService) HistorialChofer(ctx context.Context, choferID uuid.UUID, limite int, desde, hasta *time.Time) (*dto.HistorialChoferResponse, error) {
	chofer, err := s.usuarioRepo.FindByID(ctx, choferID)
	if err != nil || chofer.Rol != model.RolChofer {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("historial chofer: lookup failed")
			return nil, apierror.NewInternal()
		}
		return nil, apierror.NewNotFound("Chofer no encontrado")
	}

	if limite <= 0 {
		limite = historialLimiteDefault
	}
	if desde == nil || hasta == nil {
		desde, hasta = nil, nil
	}

	jornadas, err := s.repo.ListByChofer(ctx, choferID, limite, desde, hasta)
	if err != nil {
		log.Error().Err(err).Msg("historial chofer: query failed")
		return nil, apierror.NewInternal()
	}

	resp := &dto.HistorialChoferResponse{
		Chofer:   dto.ChoferRef{ID: chofer.ID.String(), Nombre: chofer.Nombre},
		Jornadas: make([]dto.JornadaResponse, 0, len(jornadas)),
	}

	totalMinutos := 0
	completadas := 0
	for i := range jornadas {
		jr := jornadaToResponse(&jornadas[i])
		resp.Jornadas = append(resp.Jornadas, jr)
		if jr.Duracion != nil {
			completadas++
			totalMinutos += jr.Duracion.Minutos
		}
	}
	resp.Resumen = dto.ResumenJornadas{
		TotalJornadas:       len(jornadas),
		JornadasCompletadas: completadas,
		TiempoTotal:         duracionDesdeMinutos(totalMinutos),
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// calcularDuracion applies the duration rule used everywhere:
// minutos = round(ms / 60000), formato = "{horas}h {minutos}m".
func calcularDuracion(desde, hasta time.Time) dto.Duracion {
	minutos := int(math.Round(float64(hasta.Sub(desde).Milliseconds()) / 60000.0))
	return duracionDesdeMinutos(minutos)
}

func duracionDesdeMinutos(minutos int) dto.Duracion {
	return dto.Duracion{
		Minutos: minutos,
		Formato: fmt.Sprintf("%dh %dm", minutos/60, minutos%60),
	}
}

// appendNotas joins check-out notes to existing notes with a newline,
// never overwriting what the check-in recorded.
func appendNotas(existentes, nuevas *string) *string {
	if nuevas == nil || *nuevas == "" {
		return existentes
	}
	prev := ""
	if existentes != nil {
		prev = *existentes
	}
	joined := strings.TrimSpace(prev + "\n" + *nuevas)
	return &joined
}

func jornadaToResponse(j *model.Jornada) dto.JornadaResponse {
	resp := dto.JornadaResponse{
		ID:                j.ID.String(),
		ChoferID:          j.ChoferID.String(),
		CheckIn:           j.CheckIn,
		CheckOut:          j.CheckOut,
		UbicacionCheckIn:  j.UbicacionCheckIn,
		UbicacionCheckOut: j.UbicacionCheckOut,
		Notas:             j.Notas,
	}
	if j.CheckOut != nil {
		d := calcularDuracion(j.CheckIn, *j.CheckOut)
		resp.Duracion = &d
	}
	return resp
}
