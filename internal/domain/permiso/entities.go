package permiso

import "errors"

var ErrNotFound = errors.New("permiso no encontrado")

// Permiso is one role/module capability row; (rol_id, modulo) is unique.
type Permiso struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RolID    uint64 `gorm:"column:rol_id;not null;uniqueIndex:ux_permisos_rol_modulo,priority:1" json:"rol_id"`
	Modulo   string `gorm:"column:modulo;size:60;not null;uniqueIndex:ux_permisos_rol_modulo,priority:2" json:"modulo"`
	Ver      bool   `gorm:"column:ver;default:false" json:"ver"`
	Crear    bool   `gorm:"column:crear;default:false" json:"crear"`
	Editar   bool   `gorm:"column:editar;default:false" json:"editar"`
	Eliminar bool   `gorm:"column:eliminar;default:false" json:"eliminar"`
}

func (Permiso) TableName() string { return "permisos" }

// Acciones de permiso usadas por el middleware.
const (
	AccionVer      = "ver"
	AccionCrear    = "crear"
	AccionEditar   = "editar"
	AccionEliminar = "eliminar"
)

// Permite reports whether the row grants the given action.
func (p *Permiso) Permite(accion string) bool {
	switch accion {
	case AccionVer:
		return p.Ver
	case AccionCrear:
		return p.Crear
	case AccionEditar:
		return p.Editar
	case AccionEliminar:
		return p.Eliminar
	default:
		return false
	}
}
