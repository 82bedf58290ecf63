package tabla

import (
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestActiveDefaults(t *testing.T) {
	d := &Descriptor{Table: "empresas", Modulo: "empresas"}
	if got := d.Active(); got != "activo" {
		t.Errorf("Active() = %q, want activo", got)
	}

	d = &Descriptor{Table: "asistencias", Modulo: "asistencia", NoSoftDelete: true}
	if got := d.Active(); got != "" {
		t.Errorf("Active() with NoSoftDelete = %q, want empty", got)
	}

	d = &Descriptor{Table: "x", Modulo: "x", ActiveColumn: "habilitado"}
	if got := d.Active(); got != "habilitado" {
		t.Errorf("Active() = %q, want habilitado", got)
	}
}

func TestProjectionDefaultsToStar(t *testing.T) {
	d := &Descriptor{Table: "empresas", Modulo: "empresas"}
	p := d.Projection()
	if len(p) != 1 || p[0] != "empresas.*" {
		t.Errorf("Projection() = %v", p)
	}

	d.SelectFields = []string{"empresas.id", "empresas.rut"}
	if got := d.Projection(); len(got) != 2 || got[0] != "empresas.id" {
		t.Errorf("Projection() = %v", got)
	}
}

func TestLabelFallsBackToFieldName(t *testing.T) {
	d := &Descriptor{Table: "empresas", Modulo: "empresas", Labels: map[string]string{"rut": "RUT"}}
	if got := d.Label("rut"); got != "RUT" {
		t.Errorf("Label(rut) = %q", got)
	}
	if got := d.Label("telefono"); got != "telefono" {
		t.Errorf("Label(telefono) = %q, want raw name", got)
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(
		&Descriptor{Table: "empresas", Modulo: "empresas"},
		&Descriptor{Table: "otras_empresas", Modulo: "empresas"},
	)
	if err == nil || !strings.Contains(err.Error(), "duplicado") {
		t.Fatalf("want duplicate-module error, got %v", err)
	}

	_, err = NewRegistry(&Descriptor{Table: "", Modulo: "empresas"})
	if err == nil {
		t.Fatal("want error for descriptor without table")
	}
}

func TestRegistryLookups(t *testing.T) {
	r, err := NewRegistry(
		&Descriptor{Table: "empresas", Modulo: "empresas"},
		&Descriptor{Table: "obras", Modulo: "obras"},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if _, ok := r.Get("empresas"); !ok {
		t.Error("Get(empresas) not found")
	}
	if _, ok := r.Get("inexistente"); ok {
		t.Error("Get(inexistente) should miss")
	}
	if d, ok := r.ByTable("obras"); !ok || d.Modulo != "obras" {
		t.Errorf("ByTable(obras) = %+v, %v", d, ok)
	}
	mods := r.Modulos()
	if len(mods) != 2 || mods[0] != "empresas" || mods[1] != "obras" {
		t.Errorf("Modulos() = %v, want sorted pair", mods)
	}
}

type empresaSchema struct {
	ID          uint64 `gorm:"primaryKey;column:id"`
	RazonSocial string `gorm:"column:razon_social"`
	RUT         string `gorm:"column:rut"`
	Activo      bool   `gorm:"column:activo"`
}

func (empresaSchema) TableName() string { return "empresas" }

func openSchemaDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&empresaSchema{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestValidateFillsColumnsAndChecksNames(t *testing.T) {
	db := openSchemaDB(t)

	d := &Descriptor{
		Table:        "empresas",
		Modulo:       "empresas",
		SearchFields: []string{"razon_social", "rut"},
		// qualified names belong to joined tables and are not checked
		AllowedFilters: []string{"rut"},
	}
	r, _ := NewRegistry(d)
	if err := r.Validate(db); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !d.HasColumn("razon_social") || d.HasColumn("telefono") {
		t.Error("column set not captured correctly")
	}
}

func TestValidateRejectsUnknownSearchColumn(t *testing.T) {
	db := openSchemaDB(t)

	d := &Descriptor{Table: "empresas", Modulo: "empresas", SearchFields: []string{"giro"}}
	r, _ := NewRegistry(d)
	err := r.Validate(db)
	if err == nil || !strings.Contains(err.Error(), "giro") {
		t.Fatalf("want unknown-column error, got %v", err)
	}
}

func TestValidateRejectsMissingTable(t *testing.T) {
	db := openSchemaDB(t)

	r, _ := NewRegistry(&Descriptor{Table: "bodegas", Modulo: "bodegas"})
	if err := r.Validate(db); err == nil {
		t.Fatal("want missing-table error")
	}
}

func TestValidateSkipsQualifiedNames(t *testing.T) {
	db := openSchemaDB(t)

	d := &Descriptor{
		Table:        "empresas",
		Modulo:       "empresas",
		SearchFields: []string{"razon_social", "otras.columna"},
	}
	r, _ := NewRegistry(d)
	if err := r.Validate(db); err != nil {
		t.Fatalf("qualified name should be skipped: %v", err)
	}
}
