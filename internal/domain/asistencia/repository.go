package asistencia

import "context"

type Repository interface {
	// GetByNaturalKey fetches the row for (trabajador, obra, fecha);
	// ErrNotFound when absent.
	GetByNaturalKey(ctx context.Context, trabajadorID, obraID uint64, fecha string) (*Asistencia, error)
	Create(ctx context.Context, a *Asistencia) error
	// Update persists all upsertable fields of an existing row.
	Update(ctx context.Context, a *Asistencia) error
}
