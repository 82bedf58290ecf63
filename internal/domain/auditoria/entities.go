package auditoria

import (
	"time"

	"gorm.io/datatypes"
)

// Acciones registradas en el log.
const (
	AccionCrear      = "CREATE"
	AccionActualizar = "UPDATE"
	AccionEliminar   = "DELETE"
)

// LogAuditoria is append-only; rows are never updated or deleted.
type LogAuditoria struct {
	ID        uint64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UsuarioID uint64            `gorm:"column:usuario_id;not null;index" json:"usuario_id"`
	Modulo    string            `gorm:"column:modulo;size:60;not null;index" json:"modulo"`
	Accion    string            `gorm:"column:accion;size:12;not null" json:"accion"`
	ItemID    *int64            `gorm:"column:item_id" json:"item_id"`
	Detalle   datatypes.JSONMap `gorm:"column:detalle;type:json" json:"detalle"`
	IP        string            `gorm:"column:ip;size:45" json:"ip"`
	UserAgent string            `gorm:"column:user_agent;size:255" json:"user_agent"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LogAuditoria) TableName() string { return "logs_auditoria" }

// Cambio is one field's before/after pair.
type Cambio struct {
	De any `json:"de"`
	A  any `json:"a"`
}

// Entrada is a queued log entry waiting for the recorder.
type Entrada struct {
	UsuarioID uint64
	Modulo    string
	Accion    string
	ItemID    *int64
	// Cambios is set for updates, Datos for creates; Resumen always.
	Cambios   map[string]Cambio
	Datos     map[string]any
	Resumen   string
	IP        string
	UserAgent string
}
