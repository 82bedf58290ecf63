package mysql

import (
	"context"

	"boveda-lols-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Asistencias: &AsistenciaRepository{db: tx},
			Permisos:    &PermisoRepository{db: tx},
		}
		return fn(r)
	})
}
