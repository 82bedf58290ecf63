package uow

import (
	"context"

	"boveda-lols-backend/internal/domain/asistencia"
	"boveda-lols-backend/internal/domain/permiso"
)

// Repos are the repositories that take part in the two multi-statement
// workflows (bulk attendance, role-permission save), bound to one tx.
type Repos struct {
	Asistencias asistencia.Repository
	Permisos    permiso.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn against tx-bound repos; any error rolls back all of it.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
