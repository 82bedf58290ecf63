package auditoria

import (
	"context"
	"errors"
	"sync"
	"testing"

	"boveda-lols-backend/internal/domain/auditoria"
)

// mockLogRepo captures inserted logs; set InsertFn to force failures.
type mockLogRepo struct {
	mu       sync.Mutex
	logs     []*auditoria.LogAuditoria
	InsertFn func(ctx context.Context, l *auditoria.LogAuditoria) error
	ListFn   func(ctx context.Context, q auditoria.ListQuery) ([]auditoria.LogRow, int64, error)
}

func (m *mockLogRepo) Insert(ctx context.Context, l *auditoria.LogAuditoria) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, l)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, l)
	return nil
}

func (m *mockLogRepo) List(ctx context.Context, q auditoria.ListQuery) ([]auditoria.LogRow, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockLogRepo) guardados() []*auditoria.LogAuditoria {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*auditoria.LogAuditoria, len(m.logs))
	copy(out, m.logs)
	return out
}

func entradaPrueba(resumen string) *auditoria.Entrada {
	itemID := int64(5)
	return &auditoria.Entrada{
		UsuarioID: 1,
		Modulo:    "empresas",
		Accion:    auditoria.AccionActualizar,
		ItemID:    &itemID,
		Cambios:   map[string]auditoria.Cambio{"razon_social": {De: "A SpA", A: "B SpA"}},
		Resumen:   resumen,
		IP:        "10.0.0.9",
	}
}

func TestRecorderDrainsOnClose(t *testing.T) {
	repo := &mockLogRepo{}
	rec := NewRecorder(repo, 16)

	for i := 0; i < 5; i++ {
		rec.Encolar(entradaPrueba("cambio"))
	}
	rec.Close()

	if got := len(repo.guardados()); got != 5 {
		t.Fatalf("persisted = %d, want 5", got)
	}
	if rec.Muertas() != 0 {
		t.Errorf("dead = %d, want 0", rec.Muertas())
	}
}

func TestRecorderBuildsDetalle(t *testing.T) {
	repo := &mockLogRepo{}
	rec := NewRecorder(repo, 4)

	rec.Encolar(entradaPrueba("Razón Social: A SpA → B SpA"))
	rec.Close()

	logs := repo.guardados()
	if len(logs) != 1 {
		t.Fatalf("persisted = %d", len(logs))
	}
	l := logs[0]
	if l.Modulo != "empresas" || l.Accion != auditoria.AccionActualizar {
		t.Errorf("log = %+v", l)
	}
	if l.ItemID == nil || *l.ItemID != 5 {
		t.Errorf("item_id = %v", l.ItemID)
	}
	if l.Detalle["resumen"] != "Razón Social: A SpA → B SpA" {
		t.Errorf("resumen = %v", l.Detalle["resumen"])
	}
	cambios, ok := l.Detalle["cambios"].(map[string]any)
	if !ok {
		t.Fatalf("cambios missing: %v", l.Detalle)
	}
	rs, ok := cambios["razon_social"].(map[string]any)
	if !ok || rs["de"] != "A SpA" || rs["a"] != "B SpA" {
		t.Errorf("cambios = %v", cambios)
	}
}

func TestRecorderCountsFailedInserts(t *testing.T) {
	repo := &mockLogRepo{
		InsertFn: func(ctx context.Context, l *auditoria.LogAuditoria) error {
			return errors.New("db down")
		},
	}
	rec := NewRecorder(repo, 4)

	rec.Encolar(entradaPrueba("x"))
	rec.Encolar(entradaPrueba("y"))
	rec.Close()

	if rec.Muertas() != 2 {
		t.Fatalf("dead = %d, want 2", rec.Muertas())
	}
}

func TestRecorderDropsWhenQueueFull(t *testing.T) {
	bloqueo := make(chan struct{})
	repo := &mockLogRepo{
		InsertFn: func(ctx context.Context, l *auditoria.LogAuditoria) error {
			<-bloqueo
			return nil
		},
	}
	rec := NewRecorder(repo, 1)

	// first entry occupies the worker, second fills the buffer, third drops
	rec.Encolar(entradaPrueba("a"))
	rec.Encolar(entradaPrueba("b"))
	rec.Encolar(entradaPrueba("c"))

	// give the worker a moment to pull the first entry, then one more drop
	for i := 0; rec.Muertas() == 0 && i < 100; i++ {
		rec.Encolar(entradaPrueba("d"))
	}
	if rec.Muertas() == 0 {
		t.Error("expected dropped entries with a saturated queue")
	}
	close(bloqueo)
	rec.Close()
}
