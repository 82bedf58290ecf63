package mysql

import (
	"context"
	"errors"

	permisoDomain "boveda-lols-backend/internal/domain/permiso"

	"gorm.io/gorm"
)

type PermisoRepository struct{ db *gorm.DB }

func NewPermisoRepository(db *gorm.DB) *PermisoRepository { return &PermisoRepository{db: db} }

func (r *PermisoRepository) GetByRolModulo(ctx context.Context, rolID uint64, modulo string) (*permisoDomain.Permiso, error) {
	var out permisoDomain.Permiso
	err := r.db.WithContext(ctx).
		Where("rol_id = ? AND modulo = ?", rolID, modulo).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, permisoDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PermisoRepository) ListByRol(ctx context.Context, rolID uint64) ([]permisoDomain.Permiso, error) {
	var out []permisoDomain.Permiso
	err := r.db.WithContext(ctx).
		Where("rol_id = ?", rolID).
		Order("modulo ASC").
		Find(&out).Error
	return out, err
}

func (r *PermisoRepository) DeleteByRol(ctx context.Context, rolID uint64) error {
	return r.db.WithContext(ctx).
		Where("rol_id = ?", rolID).
		Delete(&permisoDomain.Permiso{}).Error
}

func (r *PermisoRepository) Create(ctx context.Context, p *permisoDomain.Permiso) error {
	return r.db.WithContext(ctx).Create(p).Error
}
