package http

import (
	"net/http"

	"boveda-lols-backend/internal/apperr"
	authuc "boveda-lols-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *authuc.Service }

func NewAuthHandler(uc *authuc.Service) *AuthHandler { return &AuthHandler{uc: uc} }

func (h *AuthHandler) Login(c echo.Context) error {
	var in authuc.LoginInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("cuerpo inválido")
	}
	if err := c.Validate(&in); err != nil {
		return err
	}
	dto, err := h.uc.Login(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}
