package auditoria

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"boveda-lols-backend/internal/domain/auditoria"
	"boveda-lols-backend/internal/domain/tabla"
)

// Meta is the request identity attached to every entry.
type Meta struct {
	UsuarioID uint64
	IP        string
	UserAgent string
}

type Service struct {
	logs   auditoria.Repository
	tablas tabla.Repository
	rec    *Recorder
}

func NewService(logs auditoria.Repository, tablas tabla.Repository, rec *Recorder) *Service {
	return &Service{logs: logs, tablas: tablas, rec: rec}
}

func (s *Service) Recorder() *Recorder { return s.rec }

// RegistrarActualizacion queues an UPDATE entry. An empty change set means a
// no-op update and is suppressed entirely.
func (s *Service) RegistrarActualizacion(ctx context.Context, d *tabla.Descriptor, itemID int64, cambios map[string]auditoria.Cambio, m Meta) {
	if len(cambios) == 0 {
		return
	}
	resueltos := make(map[string]auditoria.Cambio, len(cambios))
	for campo, c := range cambios {
		if ref, ok := d.Refs[campo]; ok {
			c.De = s.etiqueta(ctx, ref, c.De)
			c.A = s.etiqueta(ctx, ref, c.A)
		}
		resueltos[campo] = c
	}

	campos := make([]string, 0, len(resueltos))
	for campo := range resueltos {
		campos = append(campos, campo)
	}
	sort.Strings(campos)
	partes := make([]string, 0, len(campos))
	for _, campo := range campos {
		c := resueltos[campo]
		partes = append(partes, fmt.Sprintf("%s: %s → %s", d.Label(campo), fmtValor(c.De), fmtValor(c.A)))
	}

	s.rec.Encolar(&auditoria.Entrada{
		UsuarioID: m.UsuarioID,
		Modulo:    d.Modulo,
		Accion:    auditoria.AccionActualizar,
		ItemID:    &itemID,
		Cambios:   resueltos,
		Resumen:   strings.Join(partes, "; "),
		IP:        m.IP,
		UserAgent: m.UserAgent,
	})
}

// RegistrarCreacion queues a CREATE entry with the payload and a summary of
// its most informative fields.
func (s *Service) RegistrarCreacion(ctx context.Context, d *tabla.Descriptor, itemID int64, datos map[string]any, m Meta) {
	limpio := make(map[string]any, len(datos))
	for campo, v := range datos {
		if excluido(d, campo) {
			continue
		}
		v = Presentable(v)
		if ref, ok := d.Refs[campo]; ok {
			v = s.etiqueta(ctx, ref, v)
		}
		limpio[campo] = v
	}

	partes := make([]string, 0, 4)
	for _, campo := range CamposCreacion(limpio, d, 4) {
		partes = append(partes, fmt.Sprintf("%s: %s", d.Label(campo), fmtValor(limpio[campo])))
	}

	s.rec.Encolar(&auditoria.Entrada{
		UsuarioID: m.UsuarioID,
		Modulo:    d.Modulo,
		Accion:    auditoria.AccionCrear,
		ItemID:    &itemID,
		Datos:     limpio,
		Resumen:   strings.Join(partes, "; "),
		IP:        m.IP,
		UserAgent: m.UserAgent,
	})
}

// RegistrarEliminacion queues a DELETE entry describing the deactivated row.
func (s *Service) RegistrarEliminacion(ctx context.Context, d *tabla.Descriptor, itemID int64, antes map[string]any, m Meta) {
	limpio := make(map[string]any, len(antes))
	for campo, v := range antes {
		if excluido(d, campo) || EsVacio(v) {
			continue
		}
		limpio[campo] = Presentable(v)
	}
	partes := make([]string, 0, 4)
	for _, campo := range CamposCreacion(limpio, d, 4) {
		partes = append(partes, fmt.Sprintf("%s: %s", d.Label(campo), fmtValor(limpio[campo])))
	}
	resumen := "Registro desactivado"
	if len(partes) > 0 {
		resumen += " — " + strings.Join(partes, "; ")
	}

	s.rec.Encolar(&auditoria.Entrada{
		UsuarioID: m.UsuarioID,
		Modulo:    d.Modulo,
		Accion:    auditoria.AccionEliminar,
		ItemID:    &itemID,
		Datos:     limpio,
		Resumen:   resumen,
		IP:        m.IP,
		UserAgent: m.UserAgent,
	})
}

// Encolar exposes the raw queue for components that build their own entries
// (the bulk attendance flow).
func (s *Service) Encolar(e *auditoria.Entrada) { s.rec.Encolar(e) }

// etiqueta swaps a foreign-key id for its display label; a missing referenced
// row falls back to the raw id.
func (s *Service) etiqueta(ctx context.Context, ref tabla.Ref, v any) any {
	if EsVacio(v) {
		return nil
	}
	if label, ok := s.tablas.ResolveLabel(ctx, ref, v); ok {
		return label
	}
	return v
}

func fmtValor(v any) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprint(v)
}

type PaginaLogs struct {
	Data       []auditoria.LogRow `json:"data"`
	Pagination tabla.Pagination   `json:"pagination"`
}

// ListLogs is the paginated, searchable viewer over the append-only log.
func (s *Service) ListLogs(ctx context.Context, q auditoria.ListQuery) (*PaginaLogs, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	rows, total, err := s.logs.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []auditoria.LogRow{}
	}
	return &PaginaLogs{
		Data: rows,
		Pagination: tabla.Pagination{
			Page:  q.Page,
			Limit: q.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(q.Limit))),
		},
	}, nil
}
