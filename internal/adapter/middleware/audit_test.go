package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boveda-lols-backend/internal/adapter/repository/mysql"
	auditoriaDomain "boveda-lols-backend/internal/domain/auditoria"
	"boveda-lols-backend/internal/domain/catalogo"
	"boveda-lols-backend/internal/domain/tabla"
	auditoriauc "boveda-lols-backend/internal/usecase/auditoria"
	tablauc "boveda-lols-backend/internal/usecase/tabla"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type entornoAuditoria struct {
	db      *gorm.DB
	e       *echo.Echo
	auditor *Auditor
	rec     *auditoriauc.Recorder
}

// armarEntorno wires the real pieces end to end on sqlite: registry, generic
// repo, audit service and recorder, plus CRUD routes for empresas.
func armarEntorno(t *testing.T) *entornoAuditoria {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&catalogo.Empresa{}, &auditoriaDomain.LogAuditoria{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}

	var descEmpresas *tabla.Descriptor
	for _, d := range catalogo.Descriptors() {
		if d.Modulo == "empresas" {
			descEmpresas = d
		}
	}
	reg, err := tabla.NewRegistry(descEmpresas)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if err := reg.Validate(db); err != nil {
		t.Fatalf("validate: %v", err)
	}

	tablas := mysql.NewTablaRepository(db)
	rec := auditoriauc.NewRecorder(mysql.NewLogRepository(db), 32)
	svc := auditoriauc.NewService(mysql.NewLogRepository(db), tablas, rec)
	auditor := NewAuditor(reg, tablas, svc)

	uc := tablauc.NewService(tablas, descEmpresas)
	e := echo.New()
	e.HideBanner = true
	g := e.Group("/api", auditor.Middleware())
	g.POST("/empresas", func(c echo.Context) error {
		var data tabla.Row
		if err := c.Bind(&data); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		row, err := uc.Create(c.Request().Context(), data)
		if err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		return c.JSON(http.StatusCreated, row)
	})
	g.PUT("/empresas/:id", func(c echo.Context) error {
		var data tabla.Row
		if err := c.Bind(&data); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		id, _ := parseIDPrueba(c)
		if err := uc.Update(c.Request().Context(), id, data); err != nil {
			return c.NoContent(http.StatusNotFound)
		}
		return c.JSON(http.StatusOK, map[string]any{"id": id})
	})
	g.DELETE("/empresas/:id", func(c echo.Context) error {
		id, _ := parseIDPrueba(c)
		if err := uc.SoftDelete(c.Request().Context(), id); err != nil {
			return c.NoContent(http.StatusNotFound)
		}
		return c.JSON(http.StatusOK, map[string]any{"id": id})
	})
	g.POST("/asistencia/masivo", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return &entornoAuditoria{db: db, e: e, auditor: auditor, rec: rec}
}

func parseIDPrueba(c echo.Context) (int64, error) {
	var id int64
	err := echo.PathParamsBinder(c).Int64("id", &id).BindError()
	return id, err
}

func (env *entornoAuditoria) hacer(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// logsGuardados waits for the detached goroutines and the recorder, then
// reads everything persisted so far.
func (env *entornoAuditoria) logsGuardados(t *testing.T) []auditoriaDomain.LogAuditoria {
	t.Helper()
	env.auditor.Wait()
	env.rec.Close()
	var out []auditoriaDomain.LogAuditoria
	if err := env.db.Order("id ASC").Find(&out).Error; err != nil {
		t.Fatalf("leer logs: %v", err)
	}
	return out
}

func TestAuditorRegistraCreacion(t *testing.T) {
	env := armarEntorno(t)

	rec := env.hacer(t, http.MethodPost, "/api/empresas", map[string]any{
		"razon_social": "Andes SpA", "rut": "76.123.123-1", "activo": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}

	logs := env.logsGuardados(t)
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	l := logs[0]
	if l.Modulo != "empresas" || l.Accion != auditoriaDomain.AccionCrear {
		t.Errorf("log = %+v", l)
	}
	if l.ItemID == nil || *l.ItemID != 1 {
		t.Errorf("item_id = %v, want response id", l.ItemID)
	}
	resumen, _ := l.Detalle["resumen"].(string)
	if !strings.Contains(resumen, "Razón Social: Andes SpA") {
		t.Errorf("resumen = %q", resumen)
	}
}

func TestAuditorRegistraActualizacionConDiff(t *testing.T) {
	env := armarEntorno(t)
	env.db.Create(&catalogo.Empresa{RazonSocial: "A SpA", RUT: "76.000.000-1", Activo: true})

	rec := env.hacer(t, http.MethodPut, "/api/empresas/1", map[string]any{
		"razon_social": "B SpA", "rut": "76.000.000-1", "activo": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}

	logs := env.logsGuardados(t)
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	resumen, _ := logs[0].Detalle["resumen"].(string)
	if resumen != "Razón Social: A SpA → B SpA" {
		t.Errorf("resumen = %q", resumen)
	}
}

func TestAuditorSuprimeActualizacionSinCambios(t *testing.T) {
	env := armarEntorno(t)
	env.db.Create(&catalogo.Empresa{RazonSocial: "A SpA", RUT: "76.000.000-1", Activo: true})

	rec := env.hacer(t, http.MethodPut, "/api/empresas/1", map[string]any{
		"razon_social": "A SpA", "rut": "76.000.000-1", "activo": true, "telefono": "",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d", rec.Code)
	}

	if logs := env.logsGuardados(t); len(logs) != 0 {
		t.Fatalf("no-op update produced %d logs", len(logs))
	}
}

func TestAuditorRegistraEliminacion(t *testing.T) {
	env := armarEntorno(t)
	env.db.Create(&catalogo.Empresa{RazonSocial: "A SpA", RUT: "76.000.000-1", Activo: true})

	rec := env.hacer(t, http.MethodDelete, "/api/empresas/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}

	logs := env.logsGuardados(t)
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	if logs[0].Accion != auditoriaDomain.AccionEliminar {
		t.Errorf("accion = %q", logs[0].Accion)
	}
}

func TestAuditorIgnoraFallos(t *testing.T) {
	env := armarEntorno(t)

	// 404: nothing to audit
	rec := env.hacer(t, http.MethodPut, "/api/empresas/99", map[string]any{"razon_social": "X"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update inexistente: %d", rec.Code)
	}
	if logs := env.logsGuardados(t); len(logs) != 0 {
		t.Fatalf("failed request produced %d logs", len(logs))
	}
}

func TestAuditorOmiteRutasDelegadas(t *testing.T) {
	env := armarEntorno(t)

	// the bulk route logs per record elsewhere
	rec := env.hacer(t, http.MethodPost, "/api/asistencia/masivo", map[string]any{"obra_id": 1})
	if rec.Code != http.StatusOK {
		t.Fatalf("masivo: %d", rec.Code)
	}
	if logs := env.logsGuardados(t); len(logs) != 0 {
		t.Fatalf("delegated route produced %d logs", len(logs))
	}
}
