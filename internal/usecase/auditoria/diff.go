package auditoria

import (
	"sort"

	"boveda-lols-backend/internal/domain/auditoria"
	"boveda-lols-backend/internal/domain/tabla"
)

// camposSensibles are never compared nor logged, for any table.
var camposSensibles = map[string]struct{}{
	"id":            {},
	"created_at":    {},
	"updated_at":    {},
	"password":      {},
	"password_hash": {},
	"token":         {},
	"user_agent":    {},
}

func excluido(d *tabla.Descriptor, campo string) bool {
	if _, ok := camposSensibles[campo]; ok {
		return true
	}
	for _, f := range d.ExcludeFields {
		if f == campo {
			return true
		}
	}
	return false
}

// Diff compares each field present in the new payload against the prior row
// state. Fields whose normalized values match are dropped; an empty result
// means the update was a no-op and must not be audited.
func Diff(antes, despues map[string]any, d *tabla.Descriptor) map[string]auditoria.Cambio {
	cambios := make(map[string]auditoria.Cambio)
	for campo, nuevo := range despues {
		if excluido(d, campo) {
			continue
		}
		viejo, existia := antes[campo]
		if !existia {
			viejo = nil
		}
		esBool, esFecha := d.IsBool(campo), d.IsDate(campo)
		if normIgual(Normalizar(viejo, esBool, esFecha), Normalizar(nuevo, esBool, esFecha)) {
			continue
		}
		cambios[campo] = auditoria.Cambio{De: Presentable(viejo), A: Presentable(nuevo)}
	}
	return cambios
}

func normIgual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}

// CamposCreacion picks the most informative fields of a create payload for
// the summary: up to limit non-empty, non-sensitive fields in stable order.
func CamposCreacion(datos map[string]any, d *tabla.Descriptor, limit int) []string {
	keys := make([]string, 0, len(datos))
	for k, v := range datos {
		if excluido(d, k) || EsVacio(v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}
