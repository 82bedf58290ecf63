package mysql

import (
	"context"
	"errors"

	asistenciaDomain "boveda-lols-backend/internal/domain/asistencia"

	"gorm.io/gorm"
)

type AsistenciaRepository struct{ db *gorm.DB }

func NewAsistenciaRepository(db *gorm.DB) *AsistenciaRepository {
	return &AsistenciaRepository{db: db}
}

func (r *AsistenciaRepository) GetByNaturalKey(ctx context.Context, trabajadorID, obraID uint64, fecha string) (*asistenciaDomain.Asistencia, error) {
	var out asistenciaDomain.Asistencia
	err := r.db.WithContext(ctx).
		Where("trabajador_id = ? AND obra_id = ? AND fecha = ?", trabajadorID, obraID, fecha).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, asistenciaDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AsistenciaRepository) Create(ctx context.Context, a *asistenciaDomain.Asistencia) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AsistenciaRepository) Update(ctx context.Context, a *asistenciaDomain.Asistencia) error {
	// Select the upsertable fields explicitly so zero values (cleared hours,
	// es_sabado=false) are written too.
	return r.db.WithContext(ctx).Model(a).
		Select("estado_id", "tipo_ausencia_id", "observacion",
			"hora_entrada", "hora_salida", "hora_colacion_inicio", "hora_colacion_fin",
			"horas_extra", "es_sabado").
		Updates(a).Error
}
