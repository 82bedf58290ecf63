package asistencia

import (
	"fmt"
	"time"

	asistenciaDomain "boveda-lols-backend/internal/domain/asistencia"
	"boveda-lols-backend/internal/domain/auditoria"
	auditoriauc "boveda-lols-backend/internal/usecase/auditoria"
)

// NormalizarFecha reduces a date or datetime input to YYYY-MM-DD, validating
// that the date portion is real.
func NormalizarFecha(s string) (string, error) {
	fecha := auditoriauc.ParteFecha(s)
	if len(fecha) != 10 {
		return "", fmt.Errorf("fecha %q no tiene formato YYYY-MM-DD", s)
	}
	if _, err := time.Parse("2006-01-02", fecha); err != nil {
		return "", err
	}
	return fecha, nil
}

func construir(obraID uint64, fecha string, reg asistenciaDomain.Registro) *asistenciaDomain.Asistencia {
	return &asistenciaDomain.Asistencia{
		TrabajadorID:       reg.TrabajadorID,
		ObraID:             obraID,
		Fecha:              fecha,
		EstadoID:           reg.EstadoID,
		TipoAusenciaID:     reg.TipoAusenciaID,
		Observacion:        reg.Observacion,
		HoraEntrada:        reg.HoraEntrada,
		HoraSalida:         reg.HoraSalida,
		HoraColacionInicio: reg.HoraColacionInicio,
		HoraColacionFin:    reg.HoraColacionFin,
		HorasExtra:         reg.HorasExtra,
		EsSabado:           reg.EsSabado,
	}
}

func aplicar(a *asistenciaDomain.Asistencia, reg asistenciaDomain.Registro) {
	a.EstadoID = reg.EstadoID
	a.TipoAusenciaID = reg.TipoAusenciaID
	a.Observacion = reg.Observacion
	a.HoraEntrada = reg.HoraEntrada
	a.HoraSalida = reg.HoraSalida
	a.HoraColacionInicio = reg.HoraColacionInicio
	a.HoraColacionFin = reg.HoraColacionFin
	a.HorasExtra = reg.HorasExtra
	a.EsSabado = reg.EsSabado
}

// diffRegistro compares the fixed upsertable field list of a stored row
// against the incoming record, under the same normalization rules the audit
// engine uses (""/nil equate, hours compare as text, es_sabado as bool).
func diffRegistro(a *asistenciaDomain.Asistencia, reg asistenciaDomain.Registro) map[string]auditoria.Cambio {
	cambios := make(map[string]auditoria.Cambio)
	comparar := func(campo string, viejo, nuevo any, esBool bool) {
		if auditoriauc.Igual(viejo, nuevo, esBool, false) {
			return
		}
		cambios[campo] = auditoria.Cambio{
			De: auditoriauc.Presentable(viejo),
			A:  auditoriauc.Presentable(nuevo),
		}
	}
	comparar("estado_id", a.EstadoID, reg.EstadoID, false)
	comparar("tipo_ausencia_id", a.TipoAusenciaID, reg.TipoAusenciaID, false)
	comparar("observacion", a.Observacion, reg.Observacion, false)
	comparar("hora_entrada", a.HoraEntrada, reg.HoraEntrada, false)
	comparar("hora_salida", a.HoraSalida, reg.HoraSalida, false)
	comparar("hora_colacion_inicio", a.HoraColacionInicio, reg.HoraColacionInicio, false)
	comparar("hora_colacion_fin", a.HoraColacionFin, reg.HoraColacionFin, false)
	comparar("horas_extra", a.HorasExtra, reg.HorasExtra, false)
	comparar("es_sabado", a.EsSabado, reg.EsSabado, true)
	return cambios
}

// datosRegistro is the CREATE audit payload for one record.
func datosRegistro(reg asistenciaDomain.Registro) map[string]any {
	datos := map[string]any{
		"trabajador_id": reg.TrabajadorID,
		"estado_id":     reg.EstadoID,
		"horas_extra":   reg.HorasExtra,
		"es_sabado":     reg.EsSabado,
	}
	if reg.TipoAusenciaID != nil {
		datos["tipo_ausencia_id"] = *reg.TipoAusenciaID
	}
	if reg.Observacion != "" {
		datos["observacion"] = reg.Observacion
	}
	for campo, v := range map[string]*string{
		"hora_entrada":         reg.HoraEntrada,
		"hora_salida":          reg.HoraSalida,
		"hora_colacion_inicio": reg.HoraColacionInicio,
		"hora_colacion_fin":    reg.HoraColacionFin,
	} {
		if v != nil && *v != "" {
			datos[campo] = *v
		}
	}
	return datos
}
