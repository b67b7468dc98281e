package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/model"
)

func TestBuscarByIDEmailAndDNI(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo)
	u := seedUsuario(repo, model.RolCliente)

	byID, err := svc.Buscar(context.Background(), u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	byEmail, err := svc.Buscar(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), byEmail.ID)

	byDNI, err := svc.Buscar(context.Background(), u.DNI)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), byDNI.ID)
}

func TestBuscarNotFound(t *testing.T) {
	svc := NewUsuarioService(newStubUsuarioRepo())

	_, err := svc.Buscar(context.Background(), "99888777")

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindNotFound, apiErr.Kind)
}

func TestBuscarRequiresSearchParam(t *testing.T) {
	svc := NewUsuarioService(newStubUsuarioRepo())

	_, err := svc.Buscar(context.Background(), "")

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
}

func TestListarPorRolRejectsUnknownRole(t *testing.T) {
	svc := NewUsuarioService(newStubUsuarioRepo())

	_, err := svc.ListarPorRol(context.Background(), "gerente")

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
}

func TestListarPorRolFilters(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo)
	seedUsuario(repo, model.RolChofer)
	seedUsuario(repo, model.RolCliente)
	seedUsuario(repo, model.RolCliente)

	resp, err := svc.ListarPorRol(context.Background(), "cliente")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Users, 2)
}

func TestActualizarIsPartial(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo)
	u := seedUsuario(repo, model.RolChofer)

	resp, err := svc.Actualizar(context.Background(), u.ID, dto.ActualizarUsuarioRequest{
		Telefono: "1199998888",
	})
	require.NoError(t, err)
	assert.Equal(t, "1199998888", resp.Telefono)
	assert.Equal(t, u.Nombre, resp.Nombre)
	assert.Equal(t, u.Email, resp.Email)
}

func TestActualizarRevalidatesCUIT(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo)
	u := seedUsuario(repo, model.RolChofer)

	_, err := svc.Actualizar(context.Background(), u.ID, dto.ActualizarUsuarioRequest{
		CUIT: "not-a-cuit",
	})

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
}

func TestResetPasswordRehashes(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo)
	u := seedUsuario(repo, model.RolCliente)
	oldHash := u.PasswordHash

	require.NoError(t, svc.ResetPassword(context.Background(), u.ID, "nuevaclave"))

	updated, err := repo.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("nuevaclave")))
}

func TestResetStatusOnlyForClientes(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo)

	chofer := seedUsuario(repo, model.RolChofer)
	err := svc.ResetStatus(context.Background(), chofer.ID)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)

	cliente := seedUsuario(repo, model.RolCliente)
	cliente.Status = model.StatusVisitado
	require.NoError(t, svc.ResetStatus(context.Background(), cliente.ID))
	updated, err := repo.FindByID(context.Background(), cliente.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDisponible, updated.Status)
}
