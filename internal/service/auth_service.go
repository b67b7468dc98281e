package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
	"github.com/Juanarielok/prototipoR1-backend/internal/config"
	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/model"
	"github.com/Juanarielok/prototipoR1-backend/internal/repository"
)

// cuitRegexp matches the Argentine CUIT format DD-DDDDDDDD-D.
var cuitRegexp = regexp.MustCompile(`^\d{2}-\d{8}-\d$`)

const bcryptCost = 12

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	rol := model.Rol(req.Role)
	if req.Role == "" {
		rol = model.RolCliente
	}
	if !rol.Valida() {
		return nil, apierror.NewValidation("Invalid role. Must be one of: admin, chofer, cliente")
	}
	if !cuitRegexp.MatchString(req.CUIT) {
		return nil, apierror.NewValidation("Invalid CUIT format (expected DD-DDDDDDDD-D)")
	}

	if existing, err := s.repo.FindConflicting(ctx, req.Email, req.DNI, req.CUIT); err == nil {
		return nil, conflictError(existing, req)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("register: conflict lookup failed")
		return nil, apierror.NewInternal()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("register: bcrypt failed")
		return nil, apierror.NewInternal()
	}

	user := &model.Usuario{
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          rol,
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
		log.Error().Err(err).Msg("register: insert failed")
		return nil, apierror.NewInternal()
	}

	token, err := s.generateToken(user)
	if err != nil {
		log.Error().Err(err).Msg("register: token signing failed")
		return nil, apierror.NewInternal()
	}

	return &dto.AuthResponse{
		Message: "User registered successfully",
		User:    UsuarioToResponse(user),
		Token:   token,
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	// Identical failure for unknown email and wrong password — the response
	// must not reveal which one was wrong.
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewUnauthorized("Invalid email or password")
		}
		log.Error().Err(err).Msg("login: lookup failed")
		return nil, apierror.NewInternal()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.NewUnauthorized("Invalid email or password")
	}

	token, err := s.generateToken(user)
	if err != nil {
		log.Error().Err(err).Msg("login: token signing failed")
		return nil, apierror.NewInternal()
	}

	return &dto.AuthResponse{
		Message: "Login successful",
		User:    UsuarioToResponse(user),
		Token:   token,
	}, nil
}

func (s *authService) generateToken(user *model.Usuario) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    user.ID.String(),
		"email": user.Email,
		"role":  string(user.Rol),
		"exp":   now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// conflictError names the conflicting field. The email branch is
// case-insensitive, matching how the repository looks conflicts up.
func conflictError(existing *model.Usuario, req dto.RegisterRequest) *apierror.Error {
	switch {
	case strings.EqualFold(existing.Email, req.Email):
		return apierror.NewConflict("User with this email already exists")
	case existing.DNI == req.DNI:
		return apierror.NewConflict("User with this DNI already exists")
	default:
		return apierror.NewConflict("User with this CUIT already exists")
	}
}

// UsuarioToResponse maps a Usuario to its public shape. The status field is
// only surfaced for clientes — it has no meaning for the other roles.
func UsuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	resp := dto.UsuarioResponse{
		ID:           u.ID.String(),
		Email:        u.Email,
		Role:         string(u.Rol),
		Nombre:       u.Nombre,
		DNI:          u.DNI,
		CUIT:         u.CUIT,
		Telefono:     u.Telefono,
		Ubicacion:    u.Ubicacion,
		RazonSocial:  u.RazonSocial,
		TipoComercio: u.TipoComercio,
		Notas:        u.Notas,
		Foto:         u.Foto,
		Usuario:      u.Usuario,
		CodigoArea:   u.CodigoArea,
	}
	if u.Rol == model.RolCliente {
		resp.Status = string(u.Status)
	}
	return resp
}
