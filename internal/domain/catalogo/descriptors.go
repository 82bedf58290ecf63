package catalogo

import (
	"time"

	"boveda-lols-backend/internal/domain/tabla"
)

// fechaPasada reports whether a date value (scanned as time.Time, string or
// []byte depending on driver) is strictly before today.
func fechaPasada(v any) bool {
	hoy := time.Now().Format("2006-01-02")
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02") < hoy
	case *time.Time:
		return t != nil && t.Format("2006-01-02") < hoy
	case string:
		return len(t) >= 10 && t[:10] < hoy
	case []byte:
		return len(t) >= 10 && string(t[:10]) < hoy
	}
	return false
}

// Descriptors is the explicit module → table mapping the generic layer runs
// on. Adding an entity here is all the per-entity code there is.
func Descriptors() []*tabla.Descriptor {
	return []*tabla.Descriptor{
		{
			Table:          "empresas",
			Modulo:         "empresas",
			SearchFields:   []string{"razon_social", "rut", "email"},
			AllowedFilters: []string{"rut"},
			BoolFields:     []string{"activo"},
			Labels: map[string]string{
				"razon_social": "Razón Social",
				"rut":          "RUT",
				"direccion":    "Dirección",
				"telefono":     "Teléfono",
				"email":        "Email",
				"activo":       "Activo",
			},
		},
		{
			Table:  "obras",
			Modulo: "obras",
			Joins:  "LEFT JOIN empresas ON empresas.id = obras.empresa_id",
			SelectFields: []string{
				"obras.*",
				"empresas.razon_social AS empresa_nombre",
			},
			SearchFields:   []string{"obras.nombre", "obras.comuna", "empresas.razon_social"},
			AllowedFilters: []string{"empresa_id", "comuna"},
			BoolFields:     []string{"activo"},
			DateFields:     []string{"fecha_inicio", "fecha_termino"},
			Labels: map[string]string{
				"empresa_id":    "Empresa",
				"nombre":        "Nombre",
				"direccion":     "Dirección",
				"comuna":        "Comuna",
				"fecha_inicio":  "Fecha Inicio",
				"fecha_termino": "Fecha Término",
				"activo":        "Activo",
			},
			Refs: map[string]tabla.Ref{
				"empresa_id": {Table: "empresas", LabelColumn: "razon_social"},
			},
		},
		{
			Table:  "trabajadores",
			Modulo: "trabajadores",
			Joins:  "LEFT JOIN obras ON obras.id = trabajadores.obra_id",
			SelectFields: []string{
				"trabajadores.*",
				"obras.nombre AS obra_nombre",
			},
			SearchFields:   []string{"trabajadores.nombres", "trabajadores.apellidos", "trabajadores.rut", "trabajadores.cargo"},
			AllowedFilters: []string{"obra_id", "cargo"},
			BoolFields:     []string{"activo"},
			DateFields:     []string{"fecha_ingreso"},
			Labels: map[string]string{
				"obra_id":       "Obra",
				"nombres":       "Nombres",
				"apellidos":     "Apellidos",
				"rut":           "RUT",
				"cargo":         "Cargo",
				"telefono":      "Teléfono",
				"email":         "Email",
				"fecha_ingreso": "Fecha Ingreso",
				"activo":        "Activo",
			},
			Refs: map[string]tabla.Ref{
				"obra_id": {Table: "obras", LabelColumn: "nombre"},
			},
		},
		{
			Table:  "documentos",
			Modulo: "documentos",
			Joins: "LEFT JOIN trabajadores ON trabajadores.id = documentos.trabajador_id " +
				"LEFT JOIN tipos_documento ON tipos_documento.id = documentos.tipo_documento_id",
			SelectFields: []string{
				"documentos.*",
				"trabajadores.nombres AS trabajador_nombres",
				"trabajadores.apellidos AS trabajador_apellidos",
				"tipos_documento.nombre AS tipo_documento_nombre",
			},
			SearchFields:   []string{"documentos.nombre_archivo", "trabajadores.nombres", "trabajadores.apellidos", "tipos_documento.nombre"},
			AllowedFilters: []string{"trabajador_id", "tipo_documento_id"},
			BoolFields:     []string{"activo"},
			DateFields:     []string{"fecha_emision", "fecha_vencimiento"},
			Labels: map[string]string{
				"trabajador_id":     "Trabajador",
				"tipo_documento_id": "Tipo de Documento",
				"nombre_archivo":    "Archivo",
				"fecha_emision":     "Fecha Emisión",
				"fecha_vencimiento": "Fecha Vencimiento",
				"activo":            "Activo",
			},
			Refs: map[string]tabla.Ref{
				"trabajador_id":     {Table: "trabajadores", LabelColumn: "nombres"},
				"tipo_documento_id": {Table: "tipos_documento", LabelColumn: "nombre"},
			},
			// expiration is derived, never stored
			Derive: func(row tabla.Row) {
				row["vencido"] = fechaPasada(row["fecha_vencimiento"])
			},
		},
		{
			Table:        "tipos_documento",
			Modulo:       "tipos-documento",
			SearchFields: []string{"nombre"},
			BoolFields:   []string{"activo"},
			Labels:       map[string]string{"nombre": "Nombre", "activo": "Activo"},
		},
		{
			Table:        "estados_asistencia",
			Modulo:       "estados-asistencia",
			SearchFields: []string{"nombre"},
			BoolFields:   []string{"activo"},
			Labels:       map[string]string{"nombre": "Nombre", "activo": "Activo"},
		},
		{
			Table:        "tipos_ausencia",
			Modulo:       "tipos-ausencia",
			SearchFields: []string{"nombre"},
			BoolFields:   []string{"activo"},
			Labels:       map[string]string{"nombre": "Nombre", "activo": "Activo"},
		},
		{
			Table:        "roles",
			Modulo:       "roles",
			SearchFields: []string{"nombre"},
			BoolFields:   []string{"activo"},
			Labels:       map[string]string{"nombre": "Nombre", "activo": "Activo"},
		},
		{
			Table:  "usuarios",
			Modulo: "usuarios",
			Joins:  "LEFT JOIN roles ON roles.id = usuarios.rol_id",
			SelectFields: []string{
				"usuarios.id", "usuarios.nombre", "usuarios.email", "usuarios.rol_id",
				"usuarios.activo", "usuarios.created_at", "usuarios.updated_at",
				"roles.nombre AS rol_nombre",
			},
			SearchFields:   []string{"usuarios.nombre", "usuarios.email", "roles.nombre"},
			AllowedFilters: []string{"rol_id"},
			BoolFields:     []string{"activo"},
			ExcludeFields:  []string{"password", "password_hash"},
			Labels: map[string]string{
				"nombre": "Nombre",
				"email":  "Email",
				"rol_id": "Rol",
				"activo": "Activo",
			},
			Refs: map[string]tabla.Ref{
				"rol_id": {Table: "roles", LabelColumn: "nombre"},
			},
		},
		{
			Table:  "asistencias",
			Modulo: "asistencia",
			Joins: "LEFT JOIN trabajadores ON trabajadores.id = asistencias.trabajador_id " +
				"LEFT JOIN estados_asistencia ON estados_asistencia.id = asistencias.estado_id",
			SelectFields: []string{
				"asistencias.*",
				"trabajadores.nombres AS trabajador_nombres",
				"trabajadores.apellidos AS trabajador_apellidos",
				"estados_asistencia.nombre AS estado_nombre",
			},
			SearchFields:   []string{"trabajadores.nombres", "trabajadores.apellidos", "asistencias.observacion"},
			AllowedFilters: []string{"obra_id", "trabajador_id", "fecha", "estado_id"},
			NoSoftDelete:   true,
			BoolFields:     []string{"es_sabado"},
			DateFields:     []string{"fecha"},
			Labels: map[string]string{
				"trabajador_id":        "Trabajador",
				"obra_id":              "Obra",
				"fecha":                "Fecha",
				"estado_id":            "Estado",
				"tipo_ausencia_id":     "Tipo de Ausencia",
				"observacion":          "Observación",
				"hora_entrada":         "Hora Entrada",
				"hora_salida":          "Hora Salida",
				"hora_colacion_inicio": "Inicio Colación",
				"hora_colacion_fin":    "Fin Colación",
				"horas_extra":          "Horas Extra",
				"es_sabado":            "Sábado",
			},
			Refs: map[string]tabla.Ref{
				"trabajador_id":    {Table: "trabajadores", LabelColumn: "nombres"},
				"obra_id":          {Table: "obras", LabelColumn: "nombre"},
				"estado_id":        {Table: "estados_asistencia", LabelColumn: "nombre"},
				"tipo_ausencia_id": {Table: "tipos_ausencia", LabelColumn: "nombre"},
			},
		},
	}
}
