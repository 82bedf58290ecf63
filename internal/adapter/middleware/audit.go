package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"boveda-lols-backend/internal/domain/auditoria"
	"boveda-lols-backend/internal/domain/tabla"
	auditoriauc "boveda-lols-backend/internal/usecase/auditoria"

	"github.com/labstack/echo/v4"
)

// Auditor turns successful mutating requests into audit log entries without
// any per-route logging code. It is best-effort: every failure is logged to
// the process log and never reaches the client.
type Auditor struct {
	registry *tabla.Registry
	tablas   tabla.Repository
	svc      *auditoriauc.Service

	wg sync.WaitGroup
}

func NewAuditor(registry *tabla.Registry, tablas tabla.Repository, svc *auditoriauc.Service) *Auditor {
	return &Auditor{registry: registry, tablas: tablas, svc: svc}
}

var accionPorMetodo = map[string]string{
	http.MethodPost:   auditoria.AccionCrear,
	http.MethodPut:    auditoria.AccionActualizar,
	http.MethodDelete: auditoria.AccionEliminar,
}

// modulosVedados never produce entries: the log viewer itself, auth, health.
var modulosVedados = map[string]struct{}{
	"logs":   {},
	"auth":   {},
	"health": {},
}

// rutasOmitidas are mutating routes logged elsewhere (bulk attendance logs
// per record) or POST-as-query endpoints.
var rutasOmitidas = []string{"/masivo", "/export", "/permisos", "/kpi", "/enviar", "/descargar"}

// estadoAuditoria is per-request state; the registrada flag is the
// idempotency guard against double logging for one completion.
type estadoAuditoria struct {
	registrada bool
}

func (a *Auditor) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accion, ok := accionPorMetodo[c.Request().Method]
			if !ok {
				return next(c)
			}
			ruta := c.Request().URL.Path
			for _, s := range rutasOmitidas {
				if strings.Contains(ruta, s) {
					return next(c)
				}
			}
			modulo := moduloDesdeRuta(ruta)
			if _, vedado := modulosVedados[modulo]; vedado {
				return next(c)
			}
			d, conocido := a.registry.Get(modulo)
			if !conocido {
				return next(c)
			}

			estado := &estadoAuditoria{}
			c.Set("estado_auditoria", estado)

			// prior state must be read before the mutation runs
			var antes tabla.Row
			var itemID int64
			if accion != auditoria.AccionCrear {
				id, err := strconv.ParseInt(c.Param("id"), 10, 64)
				if err != nil {
					return next(c)
				}
				itemID = id
				if prev, err := a.tablas.GetPlain(c.Request().Context(), d, id); err == nil {
					antes = prev
				}
			}

			var payload map[string]any
			if accion != auditoria.AccionEliminar {
				payload = leerCuerpo(c)
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				c.Error(err)
			}

			if rec.code < 200 || rec.code >= 300 {
				return nil
			}
			if estado.registrada {
				return nil
			}
			estado.registrada = true

			meta := auditoriauc.Meta{
				UsuarioID: UsuarioDe(c),
				IP:        c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			}
			cuerpo := rec.buf.Bytes()

			// detached from the already-sent response
			a.wg.Add(1)
			go func() {
				defer a.wg.Done()
				defer func() {
					if r := recover(); r != nil {
						log.Printf("auditoria: panic registrando %s %s: %v", accion, modulo, r)
					}
				}()
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				a.registrar(ctx, d, accion, itemID, antes, payload, cuerpo, meta)
			}()
			return nil
		}
	}
}

// Wait blocks until in-flight entries have been handed to the recorder.
func (a *Auditor) Wait() { a.wg.Wait() }

func (a *Auditor) registrar(ctx context.Context, d *tabla.Descriptor, accion string, itemID int64, antes tabla.Row, payload map[string]any, cuerpo []byte, meta auditoriauc.Meta) {
	switch accion {
	case auditoria.AccionCrear:
		if payload == nil {
			return
		}
		a.svc.RegistrarCreacion(ctx, d, idDeRespuesta(cuerpo), payload, meta)
	case auditoria.AccionActualizar:
		// without a prior snapshot there is no diff and nothing to log
		if antes == nil || payload == nil {
			return
		}
		a.svc.RegistrarActualizacion(ctx, d, itemID, auditoriauc.Diff(antes, payload, d), meta)
	case auditoria.AccionEliminar:
		if antes == nil {
			return
		}
		a.svc.RegistrarEliminacion(ctx, d, itemID, antes, meta)
	}
}

func moduloDesdeRuta(ruta string) string {
	resto := strings.TrimPrefix(ruta, "/api/")
	if resto == ruta {
		return ""
	}
	if i := strings.IndexByte(resto, '/'); i >= 0 {
		resto = resto[:i]
	}
	return resto
}

func leerCuerpo(c echo.Context) map[string]any {
	req := c.Request()
	if req.Body == nil {
		return nil
	}
	body, _ := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewBuffer(body))
	var payload map[string]any
	if json.Unmarshal(body, &payload) != nil {
		return nil
	}
	return payload
}

func idDeRespuesta(cuerpo []byte) int64 {
	var out struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(cuerpo, &out)
	return out.ID
}
