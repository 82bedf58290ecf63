package permiso

import "context"

type Repository interface {
	// GetByRolModulo returns ErrNotFound when the role has no row for the
	// module (treated as no capability).
	GetByRolModulo(ctx context.Context, rolID uint64, modulo string) (*Permiso, error)
	ListByRol(ctx context.Context, rolID uint64) ([]Permiso, error)
	DeleteByRol(ctx context.Context, rolID uint64) error
	Create(ctx context.Context, p *Permiso) error
}
