package auditoria

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"boveda-lols-backend/internal/domain/auditoria"

	"gorm.io/datatypes"
)

// Recorder drains queued audit entries on its own goroutine, decoupled from
// the request/response cycle. A full queue or a failed insert drops the entry
// into the dead counter; the primary request is never affected.
type Recorder struct {
	repo auditoria.Repository
	ch   chan *auditoria.Entrada
	wg   sync.WaitGroup
	dead atomic.Uint64
}

func NewRecorder(repo auditoria.Repository, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	r := &Recorder{repo: repo, ch: make(chan *auditoria.Entrada, buffer)}
	r.wg.Add(1)
	go r.drenar()
	return r
}

// Encolar never blocks the caller.
func (r *Recorder) Encolar(e *auditoria.Entrada) {
	select {
	case r.ch <- e:
	default:
		r.dead.Add(1)
		log.Printf("auditoria: cola llena, entrada descartada (modulo=%s accion=%s)", e.Modulo, e.Accion)
	}
}

// Muertas is the dead-letter counter: entries dropped or failed to persist.
func (r *Recorder) Muertas() uint64 { return r.dead.Load() }

// Close drains pending entries and stops the worker.
func (r *Recorder) Close() {
	close(r.ch)
	r.wg.Wait()
}

func (r *Recorder) drenar() {
	defer r.wg.Done()
	for e := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := r.repo.Insert(ctx, construirLog(e))
		cancel()
		if err != nil {
			r.dead.Add(1)
			log.Printf("auditoria: insert fallido (modulo=%s accion=%s): %v", e.Modulo, e.Accion, err)
		}
	}
}

func construirLog(e *auditoria.Entrada) *auditoria.LogAuditoria {
	detalle := datatypes.JSONMap{"resumen": e.Resumen}
	if len(e.Cambios) > 0 {
		cambios := make(map[string]any, len(e.Cambios))
		for campo, c := range e.Cambios {
			cambios[campo] = map[string]any{"de": c.De, "a": c.A}
		}
		detalle["cambios"] = cambios
	}
	if len(e.Datos) > 0 {
		detalle["datos"] = e.Datos
	}
	return &auditoria.LogAuditoria{
		UsuarioID: e.UsuarioID,
		Modulo:    e.Modulo,
		Accion:    e.Accion,
		ItemID:    e.ItemID,
		Detalle:   detalle,
		IP:        e.IP,
		UserAgent: e.UserAgent,
	}
}
