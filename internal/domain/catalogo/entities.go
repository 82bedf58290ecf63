// Package catalogo defines the fixed entity tables of the application. The
// generic CRUD layer never touches these structs at request time; they exist
// for migrations, seeds and tests.
package catalogo

import "time"

type Empresa struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"id"`
	RazonSocial string    `gorm:"column:razon_social;size:255;not null" json:"razon_social"`
	RUT         string    `gorm:"column:rut;size:20;uniqueIndex:ux_empresas_rut" json:"rut"`
	Direccion   string    `gorm:"column:direccion;size:255" json:"direccion"`
	Telefono    string    `gorm:"column:telefono;size:30" json:"telefono"`
	Email       string    `gorm:"column:email;size:120" json:"email"`
	Activo      bool      `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Empresa) TableName() string { return "empresas" }

type Obra struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"id"`
	EmpresaID    uint64     `gorm:"column:empresa_id;not null;index" json:"empresa_id"`
	Nombre       string     `gorm:"column:nombre;size:255;not null" json:"nombre"`
	Direccion    string     `gorm:"column:direccion;size:255" json:"direccion"`
	Comuna       string     `gorm:"column:comuna;size:120" json:"comuna"`
	FechaInicio  *time.Time `gorm:"column:fecha_inicio;type:date" json:"fecha_inicio"`
	FechaTermino *time.Time `gorm:"column:fecha_termino;type:date" json:"fecha_termino"`
	Activo       bool       `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Obra) TableName() string { return "obras" }

type Trabajador struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"id"`
	ObraID       uint64     `gorm:"column:obra_id;not null;index" json:"obra_id"`
	Nombres      string     `gorm:"column:nombres;size:120;not null" json:"nombres"`
	Apellidos    string     `gorm:"column:apellidos;size:120" json:"apellidos"`
	RUT          string     `gorm:"column:rut;size:20;uniqueIndex:ux_trabajadores_rut" json:"rut"`
	Cargo        string     `gorm:"column:cargo;size:120" json:"cargo"`
	Telefono     string     `gorm:"column:telefono;size:30" json:"telefono"`
	Email        string     `gorm:"column:email;size:120" json:"email"`
	FechaIngreso *time.Time `gorm:"column:fecha_ingreso;type:date" json:"fecha_ingreso"`
	Activo       bool       `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Trabajador) TableName() string { return "trabajadores" }

// Documento keeps expiration as a plain date; whether it is vencido is derived
// at query time, never stored.
type Documento struct {
	ID               uint64     `gorm:"primaryKey;column:id" json:"id"`
	TrabajadorID     uint64     `gorm:"column:trabajador_id;not null;index" json:"trabajador_id"`
	TipoDocumentoID  uint64     `gorm:"column:tipo_documento_id;not null" json:"tipo_documento_id"`
	NombreArchivo    string     `gorm:"column:nombre_archivo;size:255" json:"nombre_archivo"`
	Ruta             string     `gorm:"column:ruta;size:512" json:"ruta"`
	FechaEmision     *time.Time `gorm:"column:fecha_emision;type:date" json:"fecha_emision"`
	FechaVencimiento *time.Time `gorm:"column:fecha_vencimiento;type:date" json:"fecha_vencimiento"`
	Activo           bool       `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Documento) TableName() string { return "documentos" }

type TipoDocumento struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"id"`
	Nombre string `gorm:"column:nombre;size:120;not null" json:"nombre"`
	Activo bool   `gorm:"column:activo;default:true" json:"activo"`
}

func (TipoDocumento) TableName() string { return "tipos_documento" }

type EstadoAsistencia struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"id"`
	Nombre string `gorm:"column:nombre;size:60;not null" json:"nombre"`
	Activo bool   `gorm:"column:activo;default:true" json:"activo"`
}

func (EstadoAsistencia) TableName() string { return "estados_asistencia" }

type TipoAusencia struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"id"`
	Nombre string `gorm:"column:nombre;size:60;not null" json:"nombre"`
	Activo bool   `gorm:"column:activo;default:true" json:"activo"`
}

func (TipoAusencia) TableName() string { return "tipos_ausencia" }

type Rol struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"id"`
	Nombre string `gorm:"column:nombre;size:60;not null;uniqueIndex:ux_roles_nombre" json:"nombre"`
	Activo bool   `gorm:"column:activo;default:true" json:"activo"`
}

func (Rol) TableName() string { return "roles" }

type Usuario struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"id"`
	Nombre       string    `gorm:"column:nombre;size:120;not null" json:"nombre"`
	Email        string    `gorm:"column:email;size:120;not null;uniqueIndex:ux_usuarios_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null" json:"-"`
	RolID        uint64    `gorm:"column:rol_id;not null" json:"rol_id"`
	Activo       bool      `gorm:"column:activo;default:true" json:"activo"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Usuario) TableName() string { return "usuarios" }
