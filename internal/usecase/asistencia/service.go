package asistencia

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"boveda-lols-backend/internal/apperr"
	asistenciaDomain "boveda-lols-backend/internal/domain/asistencia"
	"boveda-lols-backend/internal/domain/auditoria"
	"boveda-lols-backend/internal/domain/tabla"
	"boveda-lols-backend/internal/domain/uow"
	auditoriauc "boveda-lols-backend/internal/usecase/auditoria"
)

// Registrador is where queued audit entries end up after the transaction
// commits. *auditoria.Service satisfies it.
type Registrador interface {
	Encolar(e *auditoria.Entrada)
}

type Service struct {
	uow    uow.UnitOfWork
	tablas tabla.Repository
	desc   *tabla.Descriptor
	sink   Registrador

	wg sync.WaitGroup
}

func NewService(u uow.UnitOfWork, tablas tabla.Repository, desc *tabla.Descriptor, sink Registrador) *Service {
	return &Service{uow: u, tablas: tablas, desc: desc, sink: sink}
}

type Resumen struct {
	Insertados   int `json:"insertados"`
	Actualizados int `json:"actualizados"`
	SinCambios   int `json:"sin_cambios"`
}

// pendiente is one audit entry queued during the transaction; labels are
// resolved after commit so the tx never waits on lookup queries.
type pendiente struct {
	accion       string
	itemID       int64
	trabajadorID uint64
	fecha        string
	cambios      map[string]auditoria.Cambio
	datos        map[string]any
}

// GuardarMasivo commits the whole batch in one transaction: any failing
// record rolls back every record. Audit entries for effectively-changed
// records are written after commit, off the request path.
func (s *Service) GuardarMasivo(ctx context.Context, in asistenciaDomain.CargaMasiva, m auditoriauc.Meta) (*Resumen, error) {
	res := &Resumen{}
	var pendientes []pendiente

	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		for i, reg := range in.Registros {
			fecha, err := NormalizarFecha(reg.Fecha)
			if err != nil {
				return apperr.Validation(fmt.Sprintf("registro %d: fecha inválida %q", i, reg.Fecha))
			}

			existente, err := r.Asistencias.GetByNaturalKey(ctx, reg.TrabajadorID, in.ObraID, fecha)
			switch {
			case errors.Is(err, asistenciaDomain.ErrNotFound):
				a := construir(in.ObraID, fecha, reg)
				if err := r.Asistencias.Create(ctx, a); err != nil {
					return err
				}
				res.Insertados++
				pendientes = append(pendientes, pendiente{
					accion:       auditoria.AccionCrear,
					itemID:       int64(a.ID),
					trabajadorID: reg.TrabajadorID,
					fecha:        fecha,
					datos:        datosRegistro(reg),
				})
			case err != nil:
				return err
			default:
				cambios := diffRegistro(existente, reg)
				aplicar(existente, reg)
				// the update is always applied; only the log is conditional
				if err := r.Asistencias.Update(ctx, existente); err != nil {
					return err
				}
				if len(cambios) > 0 {
					res.Actualizados++
					pendientes = append(pendientes, pendiente{
						accion:       auditoria.AccionActualizar,
						itemID:       int64(existente.ID),
						trabajadorID: reg.TrabajadorID,
						fecha:        fecha,
						cambios:      cambios,
					})
				} else {
					res.SinCambios++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(pendientes) > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.auditar(pendientes, m)
		}()
	}
	return res, nil
}

// Wait blocks until in-flight post-commit audit work finishes.
func (s *Service) Wait() { s.wg.Wait() }

// auditar resolves labels in batch (one query per referenced table) and hands
// the entries to the recorder. Already committed: failures only get logged.
func (s *Service) auditar(pendientes []pendiente, m auditoriauc.Meta) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	nombres := s.etiquetasCampo(ctx, "trabajador_id", idsTrabajador(pendientes))
	porRef := map[string]map[uint64]string{}
	for _, campo := range []string{"estado_id", "tipo_ausencia_id"} {
		porRef[campo] = s.etiquetasCampo(ctx, campo, idsCampo(pendientes, campo))
	}

	for _, p := range pendientes {
		quien := nombres[p.trabajadorID]
		if quien == "" {
			quien = fmt.Sprint(p.trabajadorID)
		}
		itemID := p.itemID
		e := &auditoria.Entrada{
			UsuarioID: m.UsuarioID,
			Modulo:    s.desc.Modulo,
			Accion:    p.accion,
			ItemID:    &itemID,
			IP:        m.IP,
			UserAgent: m.UserAgent,
		}

		if p.accion == auditoria.AccionCrear {
			e.Datos = s.resolverDatos(p.datos, porRef)
			e.Resumen = fmt.Sprintf("Asistencia registrada — %s (%s): %s",
				quien, p.fecha, resumenCampos(s.desc, e.Datos))
		} else {
			e.Cambios = s.resolverCambios(p.cambios, porRef)
			e.Resumen = fmt.Sprintf("%s (%s): %s", quien, p.fecha, resumenCambios(s.desc, e.Cambios))
		}
		s.sink.Encolar(e)
	}
}

func (s *Service) etiquetasCampo(ctx context.Context, campo string, ids []uint64) map[uint64]string {
	ref, ok := s.desc.Refs[campo]
	if !ok || len(ids) == 0 {
		return map[uint64]string{}
	}
	labels, err := s.tablas.ResolveLabels(ctx, ref, ids)
	if err != nil {
		return map[uint64]string{}
	}
	return labels
}

func (s *Service) resolverDatos(datos map[string]any, porRef map[string]map[uint64]string) map[string]any {
	out := make(map[string]any, len(datos))
	for campo, v := range datos {
		out[campo] = resolverValor(campo, v, porRef)
	}
	return out
}

func (s *Service) resolverCambios(cambios map[string]auditoria.Cambio, porRef map[string]map[uint64]string) map[string]auditoria.Cambio {
	out := make(map[string]auditoria.Cambio, len(cambios))
	for campo, c := range cambios {
		c.De = resolverValor(campo, c.De, porRef)
		c.A = resolverValor(campo, c.A, porRef)
		out[campo] = c
	}
	return out
}

func resolverValor(campo string, v any, porRef map[string]map[uint64]string) any {
	labels, ok := porRef[campo]
	if !ok || v == nil {
		return v
	}
	if id, ok := comoID(v); ok {
		if label, ok := labels[id]; ok {
			return label
		}
	}
	return v
}

func comoID(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint64:
		return t, true
	case int64:
		if t >= 0 {
			return uint64(t), true
		}
	case float64:
		if t >= 0 {
			return uint64(t), true
		}
	}
	return 0, false
}

func resumenCampos(d *tabla.Descriptor, datos map[string]any) string {
	partes := make([]string, 0, 4)
	for _, campo := range auditoriauc.CamposCreacion(datos, d, 4) {
		partes = append(partes, fmt.Sprintf("%s: %v", d.Label(campo), datos[campo]))
	}
	return strings.Join(partes, "; ")
}

func resumenCambios(d *tabla.Descriptor, cambios map[string]auditoria.Cambio) string {
	campos := make([]string, 0, len(cambios))
	for campo := range cambios {
		campos = append(campos, campo)
	}
	sort.Strings(campos)
	partes := make([]string, 0, len(campos))
	for _, campo := range campos {
		c := cambios[campo]
		partes = append(partes, fmt.Sprintf("%s: %s → %s", d.Label(campo), fmtValor(c.De), fmtValor(c.A)))
	}
	return strings.Join(partes, "; ")
}

func fmtValor(v any) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprint(v)
}

func idsTrabajador(pendientes []pendiente) []uint64 {
	vistos := map[uint64]struct{}{}
	var out []uint64
	for _, p := range pendientes {
		if _, ok := vistos[p.trabajadorID]; ok {
			continue
		}
		vistos[p.trabajadorID] = struct{}{}
		out = append(out, p.trabajadorID)
	}
	return out
}

func idsCampo(pendientes []pendiente, campo string) []uint64 {
	vistos := map[uint64]struct{}{}
	var out []uint64
	recoger := func(v any) {
		if id, ok := comoID(v); ok {
			if _, dup := vistos[id]; !dup {
				vistos[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	for _, p := range pendientes {
		if v, ok := p.datos[campo]; ok {
			recoger(v)
		}
		if c, ok := p.cambios[campo]; ok {
			recoger(c.De)
			recoger(c.A)
		}
	}
	return out
}
