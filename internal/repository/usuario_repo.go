package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Juanarielok/prototipoR1-backend/internal/model"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByDNI(ctx context.Context, dni string) (*model.Usuario, error)
	// FindConflicting returns any existing user holding the given email,
	// DNI or CUIT — used for pre-insert uniqueness checks.
	FindConflicting(ctx context.Context, email, dni, cuit string) (*model.Usuario, error)
	ListByRol(ctx context.Context, rol model.Rol) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.StatusCliente) error
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.StatusCliente) error
	UpdateStatusBulk(ctx context.Context, ids []uuid.UUID, status model.StatusCliente) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByDNI(ctx context.Context, dni string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("dni = ?", dni).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindConflicting(ctx context.Context, email, dni, cuit string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) OR dni = ? OR cuit = ?", email, dni, cuit).
		First(&u).Error
	return &u, err
}

func (r *usuarioRepo) ListByRol(ctx context.Context, rol model.Rol) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Where("rol = ?", rol).Order("nombre ASC").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.StatusCliente) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *usuarioRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status model.StatusCliente) error {
	return tx.Model(&model.Usuario{}).Where("id = ?", id).Update("status", status).Error
}

func (r *usuarioRepo) UpdateStatusBulk(ctx context.Context, ids []uuid.UUID, status model.StatusCliente) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id IN ?", ids).Update("status", status).Error
}
