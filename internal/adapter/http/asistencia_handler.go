package http

import (
	"net/http"

	"boveda-lols-backend/internal/adapter/middleware"
	"boveda-lols-backend/internal/apperr"
	asistenciaDomain "boveda-lols-backend/internal/domain/asistencia"
	asistenciauc "boveda-lols-backend/internal/usecase/asistencia"
	auditoriauc "boveda-lols-backend/internal/usecase/auditoria"

	"github.com/labstack/echo/v4"
)

type AsistenciaHandler struct{ uc *asistenciauc.Service }

func NewAsistenciaHandler(uc *asistenciauc.Service) *AsistenciaHandler {
	return &AsistenciaHandler{uc: uc}
}

// GuardarMasivo commits a site's daily batch; the per-record audit entries
// are written by the service after commit, not by the audit middleware.
func (h *AsistenciaHandler) GuardarMasivo(c echo.Context) error {
	var in asistenciaDomain.CargaMasiva
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("cuerpo inválido")
	}
	if err := c.Validate(&in); err != nil {
		return err
	}

	meta := auditoriauc.Meta{
		UsuarioID: middleware.UsuarioDe(c),
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	res, err := h.uc.GuardarMasivo(c.Request().Context(), in, meta)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
