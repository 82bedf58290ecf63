package middleware

import (
	"net/http"
	"strings"

	"boveda-lols-backend/internal/usecase/auth"
	"boveda-lols-backend/internal/usecase/permisos"

	"github.com/labstack/echo/v4"
)

// Context keys set by JWT and read by the permission and audit middlewares.
const (
	CtxUsuarioID = "usuario_id"
	CtxRolID     = "rol_id"
)

func JWT(svc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if !strings.HasPrefix(raw, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "falta credencial"})
			}
			claims, err := svc.Verificar(strings.TrimPrefix(raw, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token inválido o expirado"})
			}
			c.Set(CtxUsuarioID, claims.UsuarioID)
			c.Set(CtxRolID, claims.RolID)
			return next(c)
		}
	}
}

var accionPermiso = map[string]string{
	http.MethodGet:    "ver",
	http.MethodPost:   "crear",
	http.MethodPut:    "editar",
	http.MethodDelete: "eliminar",
}

// Permiso gates one module's routes on the caller's role capabilities.
func Permiso(svc *permisos.Service, modulo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accion, ok := accionPermiso[c.Request().Method]
			if !ok {
				return next(c)
			}
			rolID, _ := c.Get(CtxRolID).(uint64)
			if err := svc.Autorizar(c.Request().Context(), rolID, modulo, accion); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// UsuarioDe reads the authenticated user id, zero when unauthenticated.
func UsuarioDe(c echo.Context) uint64 {
	id, _ := c.Get(CtxUsuarioID).(uint64)
	return id
}
