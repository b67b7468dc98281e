package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/model"
	"github.com/Juanarielok/prototipoR1-backend/internal/repository"
)

type UsuarioService interface {
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	// Buscar resolves a user by id (UUID), email (contains @) or DNI.
	Buscar(ctx context.Context, search string) (*dto.UsuarioResponse, error)
	ListarPorRol(ctx context.Context, rol string) (*dto.UsuarioListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error
	// ResetStatus moves a cliente back to "disponible".
	ResetStatus(ctx context.Context, id uuid.UUID) error
}

type usuarioService struct {
	repo repository.UsuarioRepository
}

func NewUsuarioService(repo repository.UsuarioRepository) UsuarioService {
	return &usuarioService{repo: repo}
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if !cuitRegexp.MatchString(req.CUIT) {
		return nil, apierror.NewValidation("Invalid CUIT format (expected DD-DDDDDDDD-D)")
	}

	reg := dto.RegisterRequest{Email: req.Email, DNI: req.DNI, CUIT: req.CUIT}
	if existing, err := s.repo.FindConflicting(ctx, req.Email, req.DNI, req.CUIT); err == nil {
		return nil, conflictError(existing, reg)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("crear usuario: conflict lookup failed")
		return nil, apierror.NewInternal()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("crear usuario: bcrypt failed")
		return nil, apierror.NewInternal()
	}

	user := &model.Usuario{
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          model.Rol(req.Role),
		Nombre:       req.Nombre,
		DNI:          req.DNI,
		CUIT:         req.CUIT,
		Telefono:     req.Telefono,
		Ubicacion:    req.Ubicacion,
		RazonSocial:  req.RazonSocial,
		TipoComercio: req.TipoComercio,
		Notas:        req.Notas,
		Foto:         req.Foto,
		Usuario:      req.Usuario,
		CodigoArea:   req.CodigoArea,
		Status:       model.StatusDisponible,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		log.Error().Err(err).Msg("crear usuario: insert failed")
		return nil, apierror.NewInternal()
	}

	resp := UsuarioToResponse(user)
	return &resp, nil
}

func (s *usuarioService) Buscar(ctx context.Context, search string) (*dto.UsuarioResponse, error) {
	if search == "" {
		return nil, apierror.NewValidation("Search parameter is required (id, dni or email)")
	}

	var (
		user *model.Usuario
		err  error
	)
	switch {
	case isUUID(search):
		user, err = s.repo.FindByID(ctx, uuid.MustParse(search))
	case strings.Contains(search, "@"):
		user, err = s.repo.FindByEmail(ctx, search)
	default:
		user, err = s.repo.FindByDNI(ctx, search)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("User not found")
		}
		log.Error().Err(err).Msg("buscar usuario: lookup failed")
		return nil, apierror.NewInternal()
	}

	resp := UsuarioToResponse(user)
	return &resp, nil
}

func (s *usuarioService) ListarPorRol(ctx context.Context, rol string) (*dto.UsuarioListResponse, error) {
	r := model.Rol(rol)
	if !r.Valida() {
		return nil, apierror.NewValidation("Invalid role. Must be one of: admin, chofer, cliente")
	}

	users, err := s.repo.ListByRol(ctx, r)
	if err != nil {
		log.Error().Err(err).Msg("listar usuarios: query failed")
		return nil, apierror.NewInternal()
	}

	resp := &dto.UsuarioListResponse{
		Count: len(users),
		Users: make([]dto.UsuarioResponse, 0, len(users)),
	}
	for i := range users {
		resp.Users = append(resp.Users, UsuarioToResponse(&users[i]))
	}
	return resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("User not found")
		}
		log.Error().Err(err).Msg("actualizar usuario: lookup failed")
		return nil, apierror.NewInternal()
	}

	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.DNI != "" {
		user.DNI = req.DNI
	}
	if req.CUIT != "" {
		if !cuitRegexp.MatchString(req.CUIT) {
			return nil, apierror.NewValidation("Invalid CUIT format (expected DD-DDDDDDDD-D)")
		}
		user.CUIT = req.CUIT
	}
	if req.Telefono != "" {
		user.Telefono = req.Telefono
	}
	if req.Ubicacion != "" {
		user.Ubicacion = req.Ubicacion
	}
	if req.Role != "" {
		user.Rol = model.Rol(req.Role)
	}
	if req.RazonSocial != nil {
		user.RazonSocial = req.RazonSocial
	}
	if req.TipoComercio != nil {
		user.TipoComercio = req.TipoComercio
	}
	if req.Notas != nil {
		user.Notas = req.Notas
	}
	if req.Foto != nil {
		user.Foto = req.Foto
	}

	if err := s.repo.Update(ctx, user); err != nil {
		log.Error().Err(err).Msg("actualizar usuario: update failed")
		return nil, apierror.NewInternal()
	}

	resp := UsuarioToResponse(user)
	return &resp, nil
}

func (s *usuarioService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("User not found")
		}
		log.Error().Err(err).Msg("reset password: lookup failed")
		return apierror.NewInternal()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("reset password: bcrypt failed")
		return apierror.NewInternal()
	}
	user.PasswordHash = string(hash)

	if err := s.repo.Update(ctx, user); err != nil {
		log.Error().Err(err).Msg("reset password: update failed")
		return apierror.NewInternal()
	}
	return nil
}

func (s *usuarioService) ResetStatus(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("User not found")
		}
		log.Error().Err(err).Msg("reset status: lookup failed")
		return apierror.NewInternal()
	}
	if user.Rol != model.RolCliente {
		return apierror.NewValidation("Only clientes have a status")
	}

	if err := s.repo.UpdateStatus(ctx, id, model.StatusDisponible); err != nil {
		log.Error().Err(err).Msg("reset status: update failed")
		return apierror.NewInternal()
	}
	return nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
