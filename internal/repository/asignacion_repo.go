package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Juanarielok/prototipoR1-backend/internal/model"
)

type AsignacionRepository interface {
	// BulkCreateIgnoreDuplicates inserts the rows suppressing unique-index
	// conflicts on (chofer_id, cliente_id) and returns how many rows were
	// actually inserted.
	BulkCreateIgnoreDuplicates(ctx context.Context, rows []model.Asignacion) (int64, error)
	ListAssignedByChofer(ctx context.Context, choferID uuid.UUID) ([]model.Asignacion, error)
	CountAssignedByChofer(ctx context.Context, choferID uuid.UUID) (int64, error)
	FindAssigned(ctx context.Context, choferID, clienteID uuid.UUID) (*model.Asignacion, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.StatusAsignacion) error
}

type asignacionRepo struct{ db *gorm.DB }

func NewAsignacionRepository(db *gorm.DB) AsignacionRepository { return &asignacionRepo{db: db} }

func (r *asignacionRepo) BulkCreateIgnoreDuplicates(ctx context.Context, rows []model.Asignacion) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows)
	return res.RowsAffected, res.Error
}

func (r *asignacionRepo) ListAssignedByChofer(ctx context.Context, choferID uuid.UUID) ([]model.Asignacion, error) {
	var asignaciones []model.Asignacion
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Where("chofer_id = ? AND status = ?", choferID, model.AsignacionAssigned).
		Order("created_at DESC").
		Find(&asignaciones).Error
	return asignaciones, err
}

func (r *asignacionRepo) CountAssignedByChofer(ctx context.Context, choferID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Asignacion{}).
		Where("chofer_id = ? AND status = ?", choferID, model.AsignacionAssigned).
		Count(&count).Error
	return count, err
}

func (r *asignacionRepo) FindAssigned(ctx context.Context, choferID, clienteID uuid.UUID) (*model.Asignacion, error) {
	var a model.Asignacion
	err := r.db.WithContext(ctx).
		Where("chofer_id = ? AND cliente_id = ? AND status = ?", choferID, clienteID, model.AsignacionAssigned).
		First(&a).Error
	return &a, err
}

func (r *asignacionRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.StatusAsignacion) error {
	return tx.Model(&model.Asignacion{}).Where("id = ?", id).Update("status", status).Error
}
