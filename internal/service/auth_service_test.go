package service

// Tests for registration and login: hashing, uniqueness conflicts, token
// claims, and the deliberately identical bad-credentials failure.

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
	"github.com/Juanarielok/prototipoR1-backend/internal/config"
	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/model"
)

// ── In-memory UsuarioRepository stub ─────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByDNI(_ context.Context, dni string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.DNI == dni {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindConflicting(_ context.Context, email, dni, cuit string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if strings.EqualFold(u.Email, email) || u.DNI == dni || u.CUIT == cuit {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) ListByRol(_ context.Context, rol model.Rol) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Rol == rol {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.StatusCliente) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Status = status
	return nil
}

func (r *stubUsuarioRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status model.StatusCliente) error {
	return r.UpdateStatus(context.Background(), id, status)
}

func (r *stubUsuarioRepo) UpdateStatusBulk(_ context.Context, ids []uuid.UUID, status model.StatusCliente) error {
	for _, id := range ids {
		if u, ok := r.usuarios[id]; ok {
			u.Status = status
		}
	}
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 24,
	}
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:     "juan@example.com",
		Password:  "secret123",
		Nombre:    "Juan Pérez",
		DNI:       "30123456",
		CUIT:      "20-30123456-7",
		Telefono:  "1155551234",
		Ubicacion: "Av. Rivadavia 1234, CABA",
	}
}

func seedUsuario(repo *stubUsuarioRepo, rol model.Rol) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	u := &model.Usuario{
		ID:           uuid.New(),
		Email:        string(rol) + "-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: string(hash),
		Rol:          rol,
		Nombre:       "Usuario " + string(rol),
		DNI:          uuid.NewString()[:8],
		CUIT:         "20-" + uuid.NewString()[:8] + "-1",
		Telefono:     "1144440000",
		Ubicacion:    "Calle Falsa 123",
		Status:       model.StatusDisponible,
	}
	repo.usuarios[u.ID] = u
	return u
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestRegisterDefaultsRoleToCliente(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, testConfig())

	resp, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.Equal(t, "cliente", resp.User.Role)
	assert.Equal(t, string(model.StatusDisponible), resp.User.Status)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, testConfig())

	resp, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	stored, err := repo.FindByEmail(context.Background(), resp.User.Email)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestRegisterResponseNeverContainsPassword(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, testConfig())

	resp, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(raw)), "password")
	assert.NotContains(t, string(raw), "secret123")
}

func TestRegisterTokenCarriesIdentity(t *testing.T) {
	repo := newStubUsuarioRepo()
	cfg := testConfig()
	svc := NewAuthService(repo, cfg)

	req := validRegister()
	req.Role = "chofer"
	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims["id"])
	assert.Equal(t, req.Email, claims["email"])
	assert.Equal(t, "chofer", claims["role"])
}

func TestRegisterRejectsInvalidCUIT(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), testConfig())

	req := validRegister()
	req.CUIT = "20301234567"
	_, err := svc.Register(context.Background(), req)

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	dup := validRegister()
	dup.DNI = "40999888"
	dup.CUIT = "27-40999888-3"
	_, err = svc.Register(context.Background(), dup)

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "email")
}

func TestRegisterDuplicateEmailOtherCaseNamesEmail(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	dup := validRegister()
	dup.Email = "JUAN@example.com"
	dup.DNI = "40999888"
	dup.CUIT = "27-40999888-3"
	_, err = svc.Register(context.Background(), dup)

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "email")
}

func TestRegisterRejectsDuplicateDNI(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	dup := validRegister()
	dup.Email = "otro@example.com"
	dup.CUIT = "27-40999888-3"
	_, err = svc.Register(context.Background(), dup)

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindConflict, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "DNI")
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLoginSuccess(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "juan@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "juan@example.com", resp.User.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@example.com",
		Password: "secret123",
	})
	_, errWrongPass := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "juan@example.com",
		Password: "wrong",
	})

	var e1, e2 *apierror.Error
	require.ErrorAs(t, errUnknown, &e1)
	require.ErrorAs(t, errWrongPass, &e2)
	assert.Equal(t, apierror.KindUnauthorized, e1.Kind)
	assert.Equal(t, e1.Message, e2.Message)
}
