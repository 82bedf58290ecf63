package mysql

import (
	"context"

	auditoriaDomain "boveda-lols-backend/internal/domain/auditoria"

	"gorm.io/gorm"
)

type LogRepository struct{ db *gorm.DB }

func NewLogRepository(db *gorm.DB) *LogRepository { return &LogRepository{db: db} }

func (r *LogRepository) Insert(ctx context.Context, l *auditoriaDomain.LogAuditoria) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LogRepository) List(ctx context.Context, q auditoriaDomain.ListQuery) ([]auditoriaDomain.LogRow, int64, error) {
	base := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Table("logs_auditoria").
			Joins("LEFT JOIN usuarios ON usuarios.id = logs_auditoria.usuario_id")
		if q.Q != "" {
			like := "%" + q.Q + "%"
			tx = tx.Where("logs_auditoria.modulo LIKE ? OR logs_auditoria.detalle LIKE ? OR usuarios.nombre LIKE ?",
				like, like, like)
		}
		return tx
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []auditoriaDomain.LogRow
	err := base().
		Select("logs_auditoria.*, usuarios.nombre AS usuario_nombre").
		Order("logs_auditoria.id DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
