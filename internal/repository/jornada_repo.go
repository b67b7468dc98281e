package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/model"
)

type JornadaRepository interface {
	Create(ctx context.Context, j *model.Jornada) error
	// FindActivaByChofer returns the chofer's open jornada (check_out IS NULL).
	FindActivaByChofer(ctx context.Context, choferID uuid.UUID) (*model.Jornada, error)
	Update(ctx context.Context, j *model.Jornada) error
	// ListByChofer returns up to limite jornadas newest-check-in-first.
	// The date range filters on check_in and only applies when both bounds
	// are non-nil.
	ListByChofer(ctx context.Context, choferID uuid.UUID, limite int, desde, hasta *time.Time) ([]model.Jornada, error)
	// ListActivas returns every open jornada oldest-check-in-first with the
	// chofer preloaded.
	ListActivas(ctx context.Context) ([]model.Jornada, error)
}

type jornadaRepo struct{ db *gorm.DB }

func NewJornadaRepository(db *gorm.DB) JornadaRepository { return &jornadaRepo{db: db} }

func (r *jornadaRepo) Create(ctx context.Context, j *model.Jornada) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *jornadaRepo) FindActivaByChofer(ctx context.Context, choferID uuid.UUID) (*model.Jornada, error) {
	var j model.Jornada
	err := r.db.WithContext(ctx).
		Where("chofer_id = ? AND check_out IS NULL", choferID).
		First(&j).Error
	return &j, err
}

func (r *jornadaRepo) Update(ctx context.Context, j *model.Jornada) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *jornadaRepo) ListByChofer(ctx context.Context, choferID uuid.UUID, limite int, desde, hasta *time.Time) ([]model.Jornada, error) {
	q := r.db.WithContext(ctx).Where("chofer_id = ?", choferID)
	if desde != nil && hasta != nil {
		q = q.Where("check_in BETWEEN ? AND ?", *desde, *hasta)
	}
	var jornadas []model.Jornada
	err := q.Order("check_in DESC").Limit(limite).Find(&jornadas).Error
	return jornadas, err
}

func (r *jornadaRepo) ListActivas(ctx context.Context) ([]model.Jornada, error) {
	var jornadas []model.Jornada
	err := r.db.WithContext(ctx).
		Preload("Chofer").
		Where("check_out IS NULL").
		Order("check_in ASC").
		Find(&jornadas).Error
	return jornadas, err
}
