package http

import (
	"errors"
	"log"
	"net/http"

	"boveda-lols-backend/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ErrorHandler is the single place errors become HTTP responses. Services
// attach the status via apperr; driver-level constraint errors arrive as
// gorm sentinels thanks to TranslateError.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var resp ErrorResponse
	status := http.StatusInternalServerError

	switch e, ok := apperr.As(err); {
	case ok:
		status = e.Status()
		resp.Error = e.Message
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
		resp.Error = "no encontrado"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		status = http.StatusConflict
		resp.Error = "registro duplicado"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		status = http.StatusBadRequest
		resp.Error = "referencia inexistente"
	default:
		var ve validator.ValidationErrors
		var he *echo.HTTPError
		if errors.As(err, &ve) {
			status = http.StatusBadRequest
			resp.Error = "datos inválidos"
			resp.Details = ToFieldErrors(ve)
		} else if errors.As(err, &he) {
			status = he.Code
			resp.Error = http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				resp.Error = m
			}
		} else {
			// detail withheld from the client, full error server-side
			log.Printf("error no clasificado en %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
			resp.Error = "error interno"
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, resp)
}
