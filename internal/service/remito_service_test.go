package service

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/model"
)

// ── In-memory RemitoRepository stub ──────────────────────────────────────────

type stubRemitoRepo struct {
	remitos  map[uuid.UUID]*model.Remito
	usuarios *stubUsuarioRepo
}

func newStubRemitoRepo(usuarios *stubUsuarioRepo) *stubRemitoRepo {
	return &stubRemitoRepo{remitos: make(map[uuid.UUID]*model.Remito), usuarios: usuarios}
}

// DB returns nil so the service runs the transaction body directly.
func (r *stubRemitoRepo) DB() *gorm.DB { return nil }

func (r *stubRemitoRepo) CreateTx(_ *gorm.DB, m *model.Remito) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cloned := *m
	r.remitos[m.ID] = &cloned
	return nil
}

func (r *stubRemitoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Remito, error) {
	m, ok := r.remitos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *m
	r.preload(&copied)
	return &copied, nil
}

func (r *stubRemitoRepo) preload(m *model.Remito) {
	if r.usuarios == nil {
		return
	}
	if u, ok := r.usuarios.usuarios[m.ClienteID]; ok {
		m.Cliente = u
	}
	if u, ok := r.usuarios.usuarios[m.ChoferID]; ok {
		m.Chofer = u
	}
}

func (r *stubRemitoRepo) ListByCliente(_ context.Context, clienteID uuid.UUID) ([]model.Remito, error) {
	var out []model.Remito
	for _, m := range r.remitos {
		if m.ClienteID == clienteID {
			copied := *m
			r.preload(&copied)
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Fecha.After(out[k].Fecha) })
	return out, nil
}

func (r *stubRemitoRepo) ListByChofer(_ context.Context, choferID uuid.UUID) ([]model.Remito, error) {
	var out []model.Remito
	for _, m := range r.remitos {
		if m.ChoferID == choferID {
			copied := *m
			r.preload(&copied)
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Fecha.After(out[k].Fecha) })
	return out, nil
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

type remitoFixture struct {
	svc         RemitoService
	usuarios    *stubUsuarioRepo
	asignacions *stubAsignacionRepo
	remitos     *stubRemitoRepo
	chofer      *model.Usuario
	cliente     *model.Usuario
}

func newRemitoFixture(t *testing.T) *remitoFixture {
	t.Helper()
	usuarios := newStubUsuarioRepo()
	asignaciones := newStubAsignacionRepo(usuarios)
	remitos := newStubRemitoRepo(usuarios)
	chofer := seedUsuario(usuarios, model.RolChofer)
	cliente := seedUsuario(usuarios, model.RolCliente)

	_, err := asignaciones.BulkCreateIgnoreDuplicates(context.Background(), []model.Asignacion{
		{ChoferID: chofer.ID, ClienteID: cliente.ID, Status: model.AsignacionAssigned},
	})
	require.NoError(t, err)
	cliente.Status = model.StatusAsignado

	return &remitoFixture{
		svc:         NewRemitoService(remitos, usuarios, asignaciones, nil),
		usuarios:    usuarios,
		asignacions: asignaciones,
		remitos:     remitos,
		chofer:      chofer,
		cliente:     cliente,
	}
}

func productosDeEjemplo() []dto.ProductoRequest {
	return []dto.ProductoRequest{
		{Nombre: "Harina 000 x25kg", Cantidad: 2, Precio: decimal.RequireFromString("100.50")},
		{Nombre: "Levadura fresca", Cantidad: 1, Precio: decimal.RequireFromString("50")},
	}
}

// ── Crear ────────────────────────────────────────────────────────────────────

func TestCrearRemitoComputesTotals(t *testing.T) {
	f := newRemitoFixture(t)

	resp, err := f.svc.Crear(context.Background(), f.chofer.ID, dto.CrearRemitoRequest{
		ClienteID: f.cliente.ID.String(),
		Productos: productosDeEjemplo(),
	})
	require.NoError(t, err)

	// 2×100.50 + 1×50 = 251.00 → IVA 52.71 → total 303.71
	assert.Equal(t, "251", resp.Remito.Subtotal.String())
	assert.Equal(t, "52.71", resp.Remito.IVA.String())
	assert.Equal(t, "303.71", resp.Remito.Total.String())

	require.Len(t, resp.Remito.Productos, 2)
	assert.Equal(t, "201", resp.Remito.Productos[0].Subtotal.String())
	assert.Equal(t, "50", resp.Remito.Productos[1].Subtotal.String())
}

func TestCrearRemitoFlipsBothStatuses(t *testing.T) {
	f := newRemitoFixture(t)

	resp, err := f.svc.Crear(context.Background(), f.chofer.ID, dto.CrearRemitoRequest{
		ClienteID: f.cliente.ID.String(),
		Productos: productosDeEjemplo(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Remito creado y cliente marcado como visitado", resp.Message)
	assert.Equal(t, string(model.AsignacionDone), resp.Assignment.Status)
	assert.Equal(t, string(model.StatusVisitado), resp.Cliente.Status)

	updated, err := f.usuarios.FindByID(context.Background(), f.cliente.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusVisitado, updated.Status)

	_, err = f.asignacions.FindAssigned(context.Background(), f.chofer.ID, f.cliente.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCrearRemitoClienteNotFound(t *testing.T) {
	f := newRemitoFixture(t)

	_, err := f.svc.Crear(context.Background(), f.chofer.ID, dto.CrearRemitoRequest{
		ClienteID: uuid.NewString(),
		Productos: productosDeEjemplo(),
	})

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindNotFound, apiErr.Kind)
}

func TestCrearRemitoRequiresActiveAssignment(t *testing.T) {
	f := newRemitoFixture(t)
	otroChofer := seedUsuario(f.usuarios, model.RolChofer)

	_, err := f.svc.Crear(context.Background(), otroChofer.ID, dto.CrearRemitoRequest{
		ClienteID: f.cliente.ID.String(),
		Productos: productosDeEjemplo(),
	})

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
}

func TestCrearRemitoSecondTimeFails(t *testing.T) {
	f := newRemitoFixture(t)

	req := dto.CrearRemitoRequest{
		ClienteID: f.cliente.ID.String(),
		Productos: productosDeEjemplo(),
	}
	_, err := f.svc.Crear(context.Background(), f.chofer.ID, req)
	require.NoError(t, err)

	// Assignment is done now — a second remito against it must fail.
	_, err = f.svc.Crear(context.Background(), f.chofer.ID, req)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
}

// ── Reads ────────────────────────────────────────────────────────────────────

func TestObtenerRemitoJoinsClienteYChofer(t *testing.T) {
	f := newRemitoFixture(t)

	created, err := f.svc.Crear(context.Background(), f.chofer.ID, dto.CrearRemitoRequest{
		ClienteID: f.cliente.ID.String(),
		Productos: productosDeEjemplo(),
	})
	require.NoError(t, err)

	resp, err := f.svc.Obtener(context.Background(), uuid.MustParse(created.Remito.ID))
	require.NoError(t, err)
	require.NotNil(t, resp.Remito.Cliente)
	require.NotNil(t, resp.Remito.Chofer)
	assert.Equal(t, f.cliente.Nombre, resp.Remito.Cliente.Nombre)
	assert.Equal(t, f.chofer.Nombre, resp.Remito.Chofer.Nombre)
	assert.Equal(t, "303.71", resp.Remito.Total.String())
}

func TestObtenerRemitoNotFound(t *testing.T) {
	f := newRemitoFixture(t)

	_, err := f.svc.Obtener(context.Background(), uuid.New())

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.KindNotFound, apiErr.Kind)
}

func TestMisRemitosYPorCliente(t *testing.T) {
	f := newRemitoFixture(t)

	_, err := f.svc.Crear(context.Background(), f.chofer.ID, dto.CrearRemitoRequest{
		ClienteID: f.cliente.ID.String(),
		Productos: productosDeEjemplo(),
	})
	require.NoError(t, err)

	porChofer, err := f.svc.MisRemitos(context.Background(), f.chofer.ID)
	require.NoError(t, err)
	require.Equal(t, 1, porChofer.Count)
	require.NotNil(t, porChofer.Remitos[0].Cliente)
	assert.Nil(t, porChofer.Remitos[0].Chofer)

	porCliente, err := f.svc.PorCliente(context.Background(), f.cliente.ID)
	require.NoError(t, err)
	require.Equal(t, 1, porCliente.Count)
	require.NotNil(t, porCliente.Remitos[0].Chofer)
	assert.Nil(t, porCliente.Remitos[0].Cliente)
}
