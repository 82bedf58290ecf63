package auditoria

import (
	"testing"

	"boveda-lols-backend/internal/domain/tabla"
)

func descEmpresas() *tabla.Descriptor {
	return &tabla.Descriptor{
		Table:      "empresas",
		Modulo:     "empresas",
		BoolFields: []string{"activo"},
		Labels:     map[string]string{"razon_social": "Razón Social"},
	}
}

func TestDiffDetectsOnlyRealChanges(t *testing.T) {
	antes := map[string]any{
		"id":           int64(3),
		"razon_social": "Constructora Andes SpA",
		"telefono":     "",
		"activo":       int64(1),
		"updated_at":   "2026-03-01 10:00:00",
	}
	despues := map[string]any{
		"razon_social": "Constructora Los Andes SpA",
		"telefono":     nil,
		"activo":       true,
		"updated_at":   "2026-03-05 09:00:00",
	}

	cambios := Diff(antes, despues, descEmpresas())
	if len(cambios) != 1 {
		t.Fatalf("cambios = %v, want only razon_social", cambios)
	}
	c, ok := cambios["razon_social"]
	if !ok {
		t.Fatal("razon_social change missing")
	}
	if c.De != "Constructora Andes SpA" || c.A != "Constructora Los Andes SpA" {
		t.Errorf("cambio = %+v", c)
	}
}

func TestDiffNoOpIsEmpty(t *testing.T) {
	antes := map[string]any{
		"razon_social": "Andes SpA",
		"telefono":     "",
		"activo":       int64(1),
	}
	despues := map[string]any{
		"razon_social": "Andes SpA",
		"telefono":     nil,
		"activo":       true,
	}
	if cambios := Diff(antes, despues, descEmpresas()); len(cambios) != 0 {
		t.Fatalf("no-op update produced %v", cambios)
	}
}

func TestDiffFieldAbsentBeforeCountsAsSet(t *testing.T) {
	cambios := Diff(map[string]any{}, map[string]any{"telefono": "+56 9 5555 5555"}, descEmpresas())
	c, ok := cambios["telefono"]
	if !ok || c.De != nil || c.A != "+56 9 5555 5555" {
		t.Fatalf("cambios = %v", cambios)
	}
}

func TestDiffIgnoresSensitiveAndExcludedFields(t *testing.T) {
	d := descEmpresas()
	d.ExcludeFields = []string{"cuenta_banco"}
	antes := map[string]any{"password_hash": "a", "cuenta_banco": "1", "token": "t"}
	despues := map[string]any{"password_hash": "b", "cuenta_banco": "2", "token": "u"}

	if cambios := Diff(antes, despues, d); len(cambios) != 0 {
		t.Fatalf("sensitive fields leaked into diff: %v", cambios)
	}
}

func TestDiffDateFieldComparesByDay(t *testing.T) {
	d := &tabla.Descriptor{Table: "obras", Modulo: "obras", DateFields: []string{"fecha_inicio"}}

	cambios := Diff(
		map[string]any{"fecha_inicio": "2026-03-05 00:00:00"},
		map[string]any{"fecha_inicio": "2026-03-05"},
		d,
	)
	if len(cambios) != 0 {
		t.Fatalf("same-day date produced %v", cambios)
	}

	cambios = Diff(
		map[string]any{"fecha_inicio": "2026-03-05 00:00:00"},
		map[string]any{"fecha_inicio": "2026-04-01"},
		d,
	)
	if len(cambios) != 1 {
		t.Fatalf("changed date not detected: %v", cambios)
	}
}

func TestCamposCreacion(t *testing.T) {
	d := descEmpresas()
	datos := map[string]any{
		"razon_social": "Andes SpA",
		"rut":          "76.111.111-1",
		"telefono":     "",
		"email":        "a@b.cl",
		"direccion":    "Av. Sur 100",
		"password":     "secreta",
	}

	campos := CamposCreacion(datos, d, 4)
	if len(campos) != 4 {
		t.Fatalf("campos = %v, want 4", campos)
	}
	// stable order, empties and sensitive fields dropped
	want := []string{"direccion", "email", "razon_social", "rut"}
	for i, w := range want {
		if campos[i] != w {
			t.Errorf("campos[%d] = %q, want %q", i, campos[i], w)
		}
	}
}
