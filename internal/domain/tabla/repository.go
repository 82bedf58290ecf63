package tabla

import (
	"context"
	"errors"
)

// ErrColumnaDesconocida marks a write payload key the table does not have.
var ErrColumnaDesconocida = errors.New("columna desconocida")

// Row is a dynamic column → value record.
type Row = map[string]any

type ListQuery struct {
	Page  int
	Limit int
	// Q is free-text search over the descriptor's SearchFields.
	Q string
	// Activo is tri-state: "" (no filter), "true", "false".
	Activo string
	// Filters holds exact-match values for AllowedFilters keys.
	Filters map[string]string
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type Page struct {
	Data       []Row      `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Repository interface {
	// List returns one page of rows plus the total matching the same
	// predicate without limit/offset.
	List(ctx context.Context, d *Descriptor, q ListQuery) ([]Row, int64, error)
	// ListAll is List without pagination, for exports.
	ListAll(ctx context.Context, d *Descriptor, q ListQuery) ([]Row, error)
	// Get fetches one row with the descriptor's joins and projection.
	Get(ctx context.Context, d *Descriptor, id int64) (Row, error)
	// GetPlain fetches one bare row (no joins), used for prior-state capture.
	GetPlain(ctx context.Context, d *Descriptor, id int64) (Row, error)
	Insert(ctx context.Context, d *Descriptor, data Row) (int64, error)
	Update(ctx context.Context, d *Descriptor, id int64, data Row) error
	SetActivo(ctx context.Context, d *Descriptor, id int64, active bool) error
	// ResolveLabel turns a foreign-key id into its display label.
	ResolveLabel(ctx context.Context, ref Ref, id any) (string, bool)
	// ResolveLabels resolves many ids against one table in a single query.
	ResolveLabels(ctx context.Context, ref Ref, ids []uint64) (map[uint64]string, error)
}
