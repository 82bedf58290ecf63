package asistencia

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("asistencia no encontrada")

// Asistencia is one worker-day. The (trabajador_id, obra_id, fecha) triple is
// the natural key the bulk upsert matches against.
type Asistencia struct {
	ID                 uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TrabajadorID       uint64    `gorm:"column:trabajador_id;not null;uniqueIndex:ux_asistencias_nk,priority:1" json:"trabajador_id"`
	ObraID             uint64    `gorm:"column:obra_id;not null;uniqueIndex:ux_asistencias_nk,priority:2" json:"obra_id"`
	// Fecha is always the normalized YYYY-MM-DD form; stored as text so the
	// natural-key comparison is exact under every driver.
	Fecha              string    `gorm:"column:fecha;size:10;not null;uniqueIndex:ux_asistencias_nk,priority:3" json:"fecha"`
	EstadoID           uint64    `gorm:"column:estado_id;not null" json:"estado_id"`
	TipoAusenciaID     *uint64   `gorm:"column:tipo_ausencia_id" json:"tipo_ausencia_id"`
	Observacion        string    `gorm:"column:observacion;type:text" json:"observacion"`
	HoraEntrada        *string   `gorm:"column:hora_entrada;size:8" json:"hora_entrada"`
	HoraSalida         *string   `gorm:"column:hora_salida;size:8" json:"hora_salida"`
	HoraColacionInicio *string   `gorm:"column:hora_colacion_inicio;size:8" json:"hora_colacion_inicio"`
	HoraColacionFin    *string   `gorm:"column:hora_colacion_fin;size:8" json:"hora_colacion_fin"`
	HorasExtra         float64   `gorm:"column:horas_extra;default:0" json:"horas_extra"`
	EsSabado           bool      `gorm:"column:es_sabado;default:false" json:"es_sabado"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Asistencia) TableName() string { return "asistencias" }

// Registro is one incoming record of a bulk submission.
type Registro struct {
	TrabajadorID       uint64  `json:"trabajador_id" validate:"required,gt=0"`
	Fecha              string  `json:"fecha" validate:"required"`
	EstadoID           uint64  `json:"estado_id" validate:"required,gt=0"`
	TipoAusenciaID     *uint64 `json:"tipo_ausencia_id"`
	Observacion        string  `json:"observacion"`
	HoraEntrada        *string `json:"hora_entrada"`
	HoraSalida         *string `json:"hora_salida"`
	HoraColacionInicio *string `json:"hora_colacion_inicio"`
	HoraColacionFin    *string `json:"hora_colacion_fin"`
	HorasExtra         float64 `json:"horas_extra"`
	EsSabado           bool    `json:"es_sabado"`
}

// CargaMasiva is the bulk-upsert request body.
type CargaMasiva struct {
	ObraID    uint64     `json:"obra_id" validate:"required,gt=0"`
	Registros []Registro `json:"registros" validate:"required,min=1,dive"`
}
