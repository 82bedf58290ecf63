package mysql

import (
	"context"
	"errors"

	"boveda-lols-backend/internal/domain/catalogo"

	"gorm.io/gorm"
)

type UsuarioRepository struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) *UsuarioRepository { return &UsuarioRepository{db: db} }

func (r *UsuarioRepository) GetByEmail(ctx context.Context, email string) (*catalogo.Usuario, error) {
	var out catalogo.Usuario
	err := r.db.WithContext(ctx).
		Where("email = ? AND activo = ?", email, true).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalogo.ErrUsuarioNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UsuarioRepository) GetByID(ctx context.Context, id uint64) (*catalogo.Usuario, error) {
	var out catalogo.Usuario
	err := r.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalogo.ErrUsuarioNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
