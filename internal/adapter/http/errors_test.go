package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"boveda-lols-backend/internal/apperr"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// lanzar drives an error through the real echo pipeline so the handler sees
// the same committed/uncommitted state production does.
func lanzar(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/x", func(echo.Context) error { return err })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	var resp ErrorResponse
	if rec.Body.Len() > 0 {
		if uerr := json.Unmarshal(rec.Body.Bytes(), &resp); uerr != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), uerr)
		}
	}
	return rec, resp
}

func TestErrorHandlerMapeos(t *testing.T) {
	casos := []struct {
		nombre  string
		err     error
		status  int
		mensaje string
	}{
		{"apperr not found", apperr.NotFound("empresa"), http.StatusNotFound, "empresa no encontrado"},
		{"apperr validación", apperr.Validation("id inválido"), http.StatusBadRequest, "id inválido"},
		{"apperr permiso", apperr.PermissionDenied("empresas", "eliminar"), http.StatusForbidden, "sin permiso de eliminar en empresas"},
		{"apperr no autorizado", apperr.Unauthorized("credenciales inválidas"), http.StatusUnauthorized, "credenciales inválidas"},
		{"gorm record not found", gorm.ErrRecordNotFound, http.StatusNotFound, "no encontrado"},
		{"gorm duplicado", gorm.ErrDuplicatedKey, http.StatusConflict, "registro duplicado"},
		{"gorm fk", gorm.ErrForeignKeyViolated, http.StatusBadRequest, "referencia inexistente"},
		{"echo http error", echo.NewHTTPError(http.StatusMethodNotAllowed, "método no permitido"), http.StatusMethodNotAllowed, "método no permitido"},
		{"desconocido", errors.New("se cayó el cable"), http.StatusInternalServerError, "error interno"},
	}
	for _, tc := range casos {
		rec, resp := lanzar(t, tc.err)
		if rec.Code != tc.status {
			t.Errorf("%s: status = %d", tc.nombre, rec.Code)
		}
		if resp.Error != tc.mensaje {
			t.Errorf("%s: error = %q", tc.nombre, resp.Error)
		}
	}
}

func TestErrorHandlerValidacionConDetalles(t *testing.T) {
	cv := NewValidator()
	verr := cv.Validate(registroPrueba{HoraEntrada: "99:99"})
	if verr == nil {
		t.Fatal("se esperaba error de validación")
	}

	rec, resp := lanzar(t, verr)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Error != "datos inválidos" || len(resp.Details) != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestErrorHandlerNoClasificadoOcultaDetalle(t *testing.T) {
	_, resp := lanzar(t, errors.New("dsn: usuario=admin clave=s3creta"))
	if resp.Error != "error interno" {
		t.Errorf("el detalle interno se filtró: %q", resp.Error)
	}
}

func TestErrorHandlerRespuestaYaEnviada(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/x", func(c echo.Context) error {
		if err := c.NoContent(http.StatusAccepted); err != nil {
			return err
		}
		return errors.New("tarde")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, la respuesta comprometida no debe reescribirse", rec.Code)
	}
}
