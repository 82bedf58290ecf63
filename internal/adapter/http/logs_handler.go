package http

import (
	"net/http"
	"strconv"

	auditoriaDomain "boveda-lols-backend/internal/domain/auditoria"
	auditoriauc "boveda-lols-backend/internal/usecase/auditoria"

	"github.com/labstack/echo/v4"
)

type LogsHandler struct{ uc *auditoriauc.Service }

func NewLogsHandler(uc *auditoriauc.Service) *LogsHandler { return &LogsHandler{uc: uc} }

func (h *LogsHandler) List(c echo.Context) error {
	q := auditoriaDomain.ListQuery{Q: c.QueryParam("q")}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		q.Limit = v
	}
	page, err := h.uc.ListLogs(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
