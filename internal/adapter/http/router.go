package http

import (
	"time"

	"boveda-lols-backend/internal/adapter/middleware"
	"boveda-lols-backend/internal/domain/tabla"
	asistenciauc "boveda-lols-backend/internal/usecase/asistencia"
	auditoriauc "boveda-lols-backend/internal/usecase/auditoria"
	authuc "boveda-lols-backend/internal/usecase/auth"
	permisosuc "boveda-lols-backend/internal/usecase/permisos"
	tablauc "boveda-lols-backend/internal/usecase/tabla"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	Registry   *tabla.Registry
	Tablas     tabla.Repository
	Auditoria  *auditoriauc.Service
	Asistencia *asistenciauc.Service
	Permisos   *permisosuc.Service
	Auth       *authuc.Service

	// Redis may be nil; the bulk route then runs without the idempotency guard.
	Redis    *redis.Client
	IdempTTL time.Duration
}

// NewEcho wires every route. Generic CRUD routes are registered one module at
// a time from the registry, so an unregistered module name 404s at the router.
func NewEcho(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(echomw.Logger(), echomw.Recover())

	h := NewHandler()
	e.GET("/health", h.Health)

	auditor := middleware.NewAuditor(d.Registry, d.Tablas, d.Auditoria)

	api := e.Group("/api")
	api.POST("/auth/login", NewAuthHandler(d.Auth).Login)

	protegido := api.Group("", middleware.JWT(d.Auth), auditor.Middleware())

	protegido.GET("/logs", NewLogsHandler(d.Auditoria).List,
		middleware.Permiso(d.Permisos, "logs"))

	asist := NewAsistenciaHandler(d.Asistencia)
	masivoMW := []echo.MiddlewareFunc{middleware.Permiso(d.Permisos, "asistencia")}
	if d.Redis != nil {
		masivoMW = append(masivoMW, middleware.Idempotency(d.Redis, d.IdempTTL))
	}
	protegido.POST("/asistencia/masivo", asist.GuardarMasivo, masivoMW...)

	ph := NewPermisosHandler(d.Permisos)
	protegido.PUT("/roles/:id/permisos", ph.Guardar, middleware.Permiso(d.Permisos, "roles"))
	protegido.GET("/roles/:id/permisos", ph.Listar, middleware.Permiso(d.Permisos, "roles"))

	for _, modulo := range d.Registry.Modulos() {
		desc, _ := d.Registry.Get(modulo)
		th := NewTablaHandler(tablauc.NewService(d.Tablas, desc))
		g := protegido.Group("/"+modulo, middleware.Permiso(d.Permisos, modulo))
		g.GET("", th.List)
		g.GET("/export", th.Export)
		g.GET("/:id", th.Get)
		g.POST("", th.Create)
		g.PUT("/:id", th.Update)
		g.DELETE("/:id", th.Delete)
	}

	return e
}
