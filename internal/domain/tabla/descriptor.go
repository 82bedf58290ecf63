// Package tabla holds the declarative per-table configuration the generic
// CRUD layer runs on. A Descriptor is fixed for the process lifetime and is
// validated once at startup against the live schema.
package tabla

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// Ref points a foreign-key column at the table and column used to turn ids
// into human-readable labels in the audit trail.
type Ref struct {
	Table       string
	LabelColumn string
}

type Descriptor struct {
	// Table is the SQL table name; Modulo is the route/permission/audit name.
	Table  string
	Modulo string

	// SearchFields are the columns eligible for LIKE '%q%' search. Qualified
	// names (with a dot) are allowed when Joins bring in other tables.
	SearchFields []string

	// Joins is a raw join fragment appended to list/get queries.
	Joins string

	// SelectFields is the projection; empty means "<table>.*".
	SelectFields []string

	// ActiveColumn is the soft-delete flag. Empty plus NoSoftDelete=false
	// defaults to "activo"; set NoSoftDelete for append-only tables.
	ActiveColumn string
	NoSoftDelete bool

	// AllowedFilters are columns eligible for exact-match filtering from
	// request query parameters.
	AllowedFilters []string

	// BoolFields / DateFields drive diff normalization (MySQL returns
	// TINYINT(1) for booleans and full datetimes for DATE columns).
	BoolFields []string
	DateFields []string

	// ExcludeFields extends the audit engine's sensitive-field set for this
	// table (e.g. password_hash on usuarios).
	ExcludeFields []string

	// Labels maps column → display name for audit summaries.
	Labels map[string]string

	// Refs maps fk column → referenced table for audit label resolution.
	Refs map[string]Ref

	// Derive computes query-time fields on a fetched row (e.g. whether a
	// document is past its expiration date). Never persisted.
	Derive func(Row)

	// columns is filled by Registry.Validate; writes are rejected for any
	// key not present here.
	columns map[string]struct{}
}

func (d *Descriptor) Active() string {
	if d.NoSoftDelete {
		return ""
	}
	if d.ActiveColumn == "" {
		return "activo"
	}
	return d.ActiveColumn
}

func (d *Descriptor) Projection() []string {
	if len(d.SelectFields) == 0 {
		return []string{d.Table + ".*"}
	}
	return d.SelectFields
}

// Label returns the display name of a column, falling back to the raw name.
func (d *Descriptor) Label(field string) string {
	if l, ok := d.Labels[field]; ok {
		return l
	}
	return field
}

func (d *Descriptor) HasColumn(name string) bool {
	_, ok := d.columns[name]
	return ok
}

func (d *Descriptor) IsBool(field string) bool {
	for _, f := range d.BoolFields {
		if f == field {
			return true
		}
	}
	return false
}

func (d *Descriptor) IsDate(field string) bool {
	for _, f := range d.DateFields {
		if f == field {
			return true
		}
	}
	return false
}

// Registry resolves module names to descriptors. Unknown modules are rejected
// at route registration, never silently skipped.
type Registry struct {
	byModulo map[string]*Descriptor
}

func NewRegistry(descs ...*Descriptor) (*Registry, error) {
	r := &Registry{byModulo: make(map[string]*Descriptor, len(descs))}
	for _, d := range descs {
		if d.Table == "" || d.Modulo == "" {
			return nil, fmt.Errorf("tabla: descriptor sin tabla o modulo: %+v", d)
		}
		if _, dup := r.byModulo[d.Modulo]; dup {
			return nil, fmt.Errorf("tabla: modulo duplicado %q", d.Modulo)
		}
		r.byModulo[d.Modulo] = d
	}
	return r, nil
}

func (r *Registry) Get(modulo string) (*Descriptor, bool) {
	d, ok := r.byModulo[modulo]
	return d, ok
}

// ByTable finds the descriptor owning a table name.
func (r *Registry) ByTable(table string) (*Descriptor, bool) {
	for _, d := range r.byModulo {
		if d.Table == table {
			return d, true
		}
	}
	return nil, false
}

func (r *Registry) Modulos() []string {
	out := make([]string, 0, len(r.byModulo))
	for m := range r.byModulo {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Validate checks every descriptor against the live schema: the table must
// exist and every configured column name must exist on it. It also records
// the table's column set so writes can reject unknown keys.
func (r *Registry) Validate(db *gorm.DB) error {
	m := db.Migrator()
	for _, d := range r.byModulo {
		if !m.HasTable(d.Table) {
			return fmt.Errorf("tabla %q no existe (modulo %s)", d.Table, d.Modulo)
		}
		cols, err := m.ColumnTypes(d.Table)
		if err != nil {
			return fmt.Errorf("columnas de %q: %w", d.Table, err)
		}
		d.columns = make(map[string]struct{}, len(cols))
		for _, c := range cols {
			d.columns[c.Name()] = struct{}{}
		}

		check := func(kind, name string) error {
			// qualified names reference joined tables; not checked here
			if strings.Contains(name, ".") {
				return nil
			}
			if !d.HasColumn(name) {
				return fmt.Errorf("tabla %q: columna %s %q no existe", d.Table, kind, name)
			}
			return nil
		}
		if a := d.Active(); a != "" {
			if err := check("activo", a); err != nil {
				return err
			}
		}
		for _, f := range d.SearchFields {
			if err := check("de busqueda", f); err != nil {
				return err
			}
		}
		for _, f := range d.AllowedFilters {
			if err := check("de filtro", f); err != nil {
				return err
			}
		}
		for f := range d.Refs {
			if err := check("de referencia", f); err != nil {
				return err
			}
		}
	}
	return nil
}
