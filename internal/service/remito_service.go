package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/apierror"
	"github.com/Juanarielok/prototipoR1-backend/internal/dto"
	"github.com/Juanarielok/prototipoR1-backend/internal/infra"
	"github.com/Juanarielok/prototipoR1-backend/internal/model"
	"github.com/Juanarielok/prototipoR1-backend/internal/repository"
	"github.com/Juanarielok/prototipoR1-backend/internal/worker"
)

// tasaIVA is the Argentine VAT rate applied to every remito.
var tasaIVA = decimal.NewFromFloat(0.21)

type RemitoService interface {
	// Crear validates the active assignment, computes all totals
	// server-side, and in ONE transaction creates the remito, marks the
	// assignment done and the cliente visitado.
	Crear(ctx context.Context, choferID uuid.UUID, req dto.CrearRemitoRequest) (*dto.CrearRemitoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.RemitoDetalleResponse, error)
	PorCliente(ctx context.Context, clienteID uuid.UUID) (*dto.RemitoListResponse, error)
	MisRemitos(ctx context.Context, choferID uuid.UUID) (*dto.RemitoListResponse, error)
	// GenerarPDF renders the remito document and returns its bytes.
	GenerarPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type remitoService struct {
	repo           repository.RemitoRepository
	usuarioRepo    repository.UsuarioRepository
	asignacionRepo repository.AsignacionRepository
	dispatcher     *worker.Dispatcher
}

func NewRemitoService(
	repo repository.RemitoRepository,
	usuarioRepo repository.UsuarioRepository,
	asignacionRepo repository.AsignacionRepository,
	dispatcher *worker.Dispatcher,
) RemitoService {
	return &remitoService{
		repo:           repo,
		usuarioRepo:    usuarioRepo,
		asignacionRepo: asignacionRepo,
		dispatcher:     dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *remitoService) Crear(ctx context.Context, choferID uuid.UUID, req dto.CrearRemitoRequest) (*dto.CrearRemitoResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.NewValidation("clienteId inválido")
	}

	cliente, err := s.usuarioRepo.FindByID(ctx, clienteID)
	if err != nil || cliente.Rol != model.RolCliente {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("crear remito: cliente lookup failed")
			return nil, apierror.NewInternal()
		}
		return nil, apierror.NewNotFound("Cliente no encontrado")
	}

	asignacion, err := s.asignacionRepo.FindAssigned(ctx, choferID, clienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewValidation("No tenés una asignación activa con este cliente")
		}
		log.Error().Err(err).Msg("crear remito: asignación lookup failed")
		return nil, apierror.NewInternal()
	}

	// Totals are always computed here — a client-supplied total is never
	// trusted. IVA is taken on the full subtotal, rounded once at the end.
	subtotal := decimal.Zero
	productos := make(model.ProductosRemito, 0, len(req.Productos))
	for _, p := range req.Productos {
		itemSubtotal := p.Precio.Mul(decimal.NewFromInt(int64(p.Cantidad)))
		subtotal = subtotal.Add(itemSubtotal)
		productos = append(productos, model.ProductoRemito{
			Nombre:   p.Nombre,
			Cantidad: p.Cantidad,
			Precio:   p.Precio,
			Subtotal: itemSubtotal,
		})
	}
	iva := subtotal.Mul(tasaIVA).Round(2)
	total := subtotal.Add(iva)

	remito := model.Remito{
		ClienteID: clienteID,
		ChoferID:  choferID,
		Fecha:     time.Now(),
		Productos: productos,
		Subtotal:  subtotal,
		IVA:       iva,
		Total:     total,
		Notas:     req.Notas,
	}

	// One transaction for the three mutations: a failure in any of them
	// leaves no remito behind and keeps the assignment claimable.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &remito); err != nil {
			return err
		}
		if err := s.asignacionRepo.UpdateStatusTx(tx, asignacion.ID, model.AsignacionDone); err != nil {
			return err
		}
		return s.usuarioRepo.UpdateStatusTx(tx, clienteID, model.StatusVisitado)
	})
	if txErr != nil {
		log.Error().Err(txErr).Msg("crear remito: transaction failed")
		return nil, apierror.NewInternal()
	}

	// Best effort — the PDF worker pre-renders and emails the document.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRemitoPDF(ctx, worker.RemitoPDFJobPayload{
			RemitoID: remito.ID.String(),
		})
	}

	return &dto.CrearRemitoResponse{
		Message:    "Remito creado y cliente marcado como visitado",
		Remito:     remitoToResponse(&remito),
		Assignment: dto.AssignmentStatus{Status: string(model.AsignacionDone)},
		Cliente:    dto.ClienteStatus{ID: clienteID.String(), Status: string(model.StatusVisitado)},
	}, nil
}

func (s *remitoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.RemitoDetalleResponse, error) {
	remito, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Remito no encontrado")
		}
		log.Error().Err(err).Msg("obtener remito: lookup failed")
		return nil, apierror.NewInternal()
	}

	detalle := remitoToDetalle(remito, true, true)
	return &dto.RemitoDetalleResponse{Remito: detalle}, nil
}

func (s *remitoService) PorCliente(ctx context.Context, clienteID uuid.UUID) (*dto.RemitoListResponse, error) {
	remitos, err := s.repo.ListByCliente(ctx, clienteID)
	if err != nil {
		log.Error().Err(err).Msg("remitos por cliente: query failed")
		return nil, apierror.NewInternal()
	}

	resp := &dto.RemitoListResponse{
		Count:   len(remitos),
		Remitos: make([]dto.RemitoDetalle, 0, len(remitos)),
	}
	for i := range remitos {
		resp.Remitos = append(resp.Remitos, remitoToDetalle(&remitos[i], false, true))
	}
	return resp, nil
}

func (s *remitoService) MisRemitos(ctx context.Context, choferID uuid.UUID) (*dto.RemitoListResponse, error) {
	remitos, err := s.repo.ListByChofer(ctx, choferID)
	if err != nil {
		log.Error().Err(err).Msg("mis remitos: query failed")
		return nil, apierror.NewInternal()
	}

	resp := &dto.RemitoListResponse{
		Count:   len(remitos),
		Remitos: make([]dto.RemitoDetalle, 0, len(remitos)),
	}
	for i := range remitos {
		resp.Remitos = append(resp.Remitos, remitoToDetalle(&remitos[i], true, false))
	}
	return resp, nil
}

func (s *remitoService) GenerarPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	remito, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Remito no encontrado")
		}
		log.Error().Err(err).Msg("pdf remito: lookup failed")
		return nil, apierror.NewInternal()
	}

	pdf, err := infra.RemitoPDFBytes(remito)
	if err != nil {
		log.Error().Err(err).Msg("pdf remito: render failed")
		return nil, apierror.NewInternal()
	}
	return pdf, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func remitoToResponse(r *model.Remito) dto.RemitoResponse {
	return dto.RemitoResponse{
		ID:        r.ID.String(),
		ClienteID: r.ClienteID.String(),
		ChoferID:  r.ChoferID.String(),
		Fecha:     r.Fecha,
		Productos: r.Productos,
		Subtotal:  r.Subtotal,
		IVA:       r.IVA,
		Total:     r.Total,
		Notas:     r.Notas,
	}
}

func remitoToDetalle(r *model.Remito, conCliente, conChofer bool) dto.RemitoDetalle {
	detalle := dto.RemitoDetalle{RemitoResponse: remitoToResponse(r)}
	if conCliente && r.Cliente != nil {
		detalle.Cliente = &dto.ClienteRemito{
			ID:        r.Cliente.ID.String(),
			Nombre:    r.Cliente.Nombre,
			CUIT:      r.Cliente.CUIT,
			Ubicacion: r.Cliente.Ubicacion,
		}
	}
	if conChofer && r.Chofer != nil {
		detalle.Chofer = &dto.ChoferRef{
			ID:     r.Chofer.ID.String(),
			Nombre: r.Chofer.Nombre,
		}
	}
	return detalle
}
