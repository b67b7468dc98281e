package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/model"
)

type RemitoRepository interface {
	// DB exposes the underlying handle so the service can open the
	// remito-creation transaction. Nil in unit tests.
	DB() *gorm.DB
	CreateTx(tx *gorm.DB, r *model.Remito) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Remito, error)
	ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Remito, error)
	ListByChofer(ctx context.Context, choferID uuid.UUID) ([]model.Remito, error)
}

type remitoRepo struct{ db *gorm.DB }

func NewRemitoRepository(db *gorm.DB) RemitoRepository { return &remitoRepo{db: db} }

func (r *remitoRepo) DB() *gorm.DB { return r.db }

func (r *remitoRepo) CreateTx(tx *gorm.DB, m *model.Remito) error {
	return tx.Create(m).Error
}

func (r *remitoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Remito, error) {
	var m model.Remito
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Chofer").
		First(&m, "id = ?", id).Error
	return &m, err
}

func (r *remitoRepo) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Remito, error) {
	var remitos []model.Remito
	err := r.db.WithContext(ctx).
		Preload("Chofer").
		Where("cliente_id = ?", clienteID).
		Order("fecha DESC").
		Find(&remitos).Error
	return remitos, err
}

func (r *remitoRepo) ListByChofer(ctx context.Context, choferID uuid.UUID) ([]model.Remito, error) {
	var remitos []model.Remito
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Where("chofer_id = ?", choferID).
		Order("fecha DESC").
		Find(&remitos).Error
	return remitos, err
}
