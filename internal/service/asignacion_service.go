package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/model"
	"github.com/Juanarielok/prototipoR1-backend/internal/repository"
)

type AsignacionService interface {
	// Asignar bulk-links the chofer to every valid cliente, suppressing
	// duplicate pairs, and flips each valid cliente to "asignado".
	Asignar(ctx context.Context, req dto.AsignarRequest) (*dto.AsignarResponse, error)
	MisAsignaciones(ctx context.Context, choferID uuid.UUID) (*dto.MisAsignacionesResponse, error)
	ContarAsignaciones(ctx context.Context, choferID uuid.UUID) (*dto.AsignacionCountResponse, error)
}

type asignacionService struct {
	repo        repository.AsignacionRepository
	usuarioRepo repository.UsuarioRepository
}

func NewAsignacionService(repo repository.AsignacionRepository, usuarioRepo repository.UsuarioRepository) AsignacionService {
	return &asignacionService{repo: repo, usuarioRepo: usuarioRepo}
}

func (s *asignacionService) Asignar(ctx context.Context, req dto.AsignarRequest) (*dto.AsignarResponse, error) {
	choferID, err := uuid.Parse(req.ChoferID)
	if err != nil {
		return nil, apierror.NewValidation("choferId inválido")
	}

	chofer, err := s.usuarioRepo.FindByID(ctx, choferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Chofer no encontrado")
		}
		log.Error().Err(err).Msg("asignar: chofer lookup failed")
		return nil, apierror.NewInternal()
	}
	if chofer.Rol != model.RolChofer {
		return nil, apierror.NewValidation("El usuario indicado no es un chofer")
	}

	// Keep only the IDs that resolve to real clientes; invalid entries are
	// dropped and the response reports exactly what was accepted.
	var (
		rows       []model.Asignacion
		validIDs   []uuid.UUID
		validIDStr []string
	)
	for _, raw := range req.ClientIds {
		clienteID, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		cliente, err := s.usuarioRepo.FindByID(ctx, clienteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			log.Error().Err(err).Msg("asignar: cliente lookup failed")
			return nil, apierror.NewInternal()
		}
		if cliente.Rol != model.RolCliente {
			continue
		}
		rows = append(rows, model.Asignacion{
			ChoferID:  choferID,
			ClienteID: clienteID,
			Status:    model.AsignacionAssigned,
		})
		validIDs = append(validIDs, clienteID)
		validIDStr = append(validIDStr, clienteID.String())
	}
	if len(rows) == 0 {
		return nil, apierror.NewValidation("Ningún cliente válido para asignar")
	}

	inserted, err := s.repo.BulkCreateIgnoreDuplicates(ctx, rows)
	if err != nil {
		log.Error().Err(err).Msg("asignar: bulk insert failed")
		return nil, apierror.NewInternal()
	}

	if err := s.usuarioRepo.UpdateStatusBulk(ctx, validIDs, model.StatusAsignado); err != nil {
		log.Error().Err(err).Msg("asignar: status update failed")
		return nil, apierror.NewInternal()
	}

	return &dto.AsignarResponse{
		Message:   "Asignados",
		Count:     int(inserted),
		ClientIds: validIDStr,
	}, nil
}

func (s *asignacionService) MisAsignaciones(ctx context.Context, choferID uuid.UUID) (*dto.MisAsignacionesResponse, error) {
	asignaciones, err := s.repo.ListAssignedByChofer(ctx, choferID)
	if err != nil {
		log.Error().Err(err).Msg("mis asignaciones: query failed")
		return nil, apierror.NewInternal()
	}

	clientes := make([]dto.ClienteAsignado, 0, len(asignaciones))
	for _, a := range asignaciones {
		if a.Cliente == nil {
			continue
		}
		clientes = append(clientes, dto.ClienteAsignado{
			ID:        a.Cliente.ID.String(),
			Nombre:    a.Cliente.Nombre,
			Ubicacion: a.Cliente.Ubicacion,
			Status:    string(a.Cliente.Status),
		})
	}
	return &dto.MisAsignacionesResponse{Clientes: clientes}, nil
}

func (s *asignacionService) ContarAsignaciones(ctx context.Context, choferID uuid.UUID) (*dto.AsignacionCountResponse, error) {
	count, err := s.repo.CountAssignedByChofer(ctx, choferID)
	if err != nil {
		log.Error().Err(err).Msg("contar asignaciones: query failed")
		return nil, apierror.NewInternal()
	}
	return &dto.AsignacionCountResponse{Count: count}, nil
}
