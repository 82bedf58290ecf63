package http

import (
	"net/http"

	"boveda-lols-backend/internal/apperr"
	permisosuc "boveda-lols-backend/internal/usecase/permisos"

	"github.com/labstack/echo/v4"
)

type PermisosHandler struct{ uc *permisosuc.Service }

func NewPermisosHandler(uc *permisosuc.Service) *PermisosHandler {
	return &PermisosHandler{uc: uc}
}

type guardarPermisosReq struct {
	Permisos []permisosuc.PermisoInput `json:"permisos" validate:"required,dive"`
}

func (h *PermisosHandler) Guardar(c echo.Context) error {
	rolID, err := parseID(c)
	if err != nil {
		return err
	}
	var req guardarPermisosReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("cuerpo inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.uc.GuardarRol(c.Request().Context(), uint64(rolID), req.Permisos); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"rol_id": rolID, "permisos": len(req.Permisos)})
}

func (h *PermisosHandler) Listar(c echo.Context) error {
	rolID, err := parseID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListByRol(c.Request().Context(), uint64(rolID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
