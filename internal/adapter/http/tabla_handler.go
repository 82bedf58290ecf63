package http

import (
	"net/http"
	"strconv"

	"boveda-lols-backend/internal/apperr"
	"boveda-lols-backend/internal/domain/tabla"
	tablauc "boveda-lols-backend/internal/usecase/tabla"

	"github.com/labstack/echo/v4"
)

// TablaHandler serves one module's CRUD surface from its descriptor; the
// router instantiates one per registered module.
type TablaHandler struct{ uc *tablauc.Service }

func NewTablaHandler(uc *tablauc.Service) *TablaHandler { return &TablaHandler{uc: uc} }

func (h *TablaHandler) listQuery(c echo.Context) tabla.ListQuery {
	q := tabla.ListQuery{
		Q:       c.QueryParam("q"),
		Activo:  c.QueryParam("activo"),
		Filters: map[string]string{},
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		q.Limit = v
	}
	for _, f := range h.uc.Descriptor().AllowedFilters {
		if v := c.QueryParam(f); v != "" {
			q.Filters[f] = v
		}
	}
	return q
}

func (h *TablaHandler) List(c echo.Context) error {
	page, err := h.uc.List(c.Request().Context(), h.listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *TablaHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	row, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, row)
}

func (h *TablaHandler) Create(c echo.Context) error {
	var data tabla.Row
	if err := c.Bind(&data); err != nil {
		return apperr.Validation("cuerpo inválido")
	}
	row, err := h.uc.Create(c.Request().Context(), data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, row)
}

func (h *TablaHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var data tabla.Row
	if err := c.Bind(&data); err != nil {
		return apperr.Validation("cuerpo inválido")
	}
	if err := h.uc.Update(c.Request().Context(), id, data); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "actualizado": true})
}

func (h *TablaHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.uc.SoftDelete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "eliminado": true})
}

func (h *TablaHandler) Export(c echo.Context) error {
	rows, err := h.uc.ExportRows(c.Request().Context(), h.listQuery(c))
	if err != nil {
		return err
	}
	d := h.uc.Descriptor()
	buf, err := RenderExcel(rows, d)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+d.Modulo+`.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("id inválido")
	}
	return id, nil
}
