package mysql

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"boveda-lols-backend/internal/domain/tabla"

	"gorm.io/gorm"
)

type TablaRepository struct{ db *gorm.DB }

func NewTablaRepository(db *gorm.DB) *TablaRepository { return &TablaRepository{db: db} }

// Tx binds the repo to a transaction.
func (r *TablaRepository) Tx(ctx context.Context, fn func(repo tabla.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TablaRepository{db: tx})
	})
}

// qualify prefixes bare column names with the table; joined columns come
// pre-qualified in the descriptor.
func qualify(d *tabla.Descriptor, field string) string {
	if strings.Contains(field, ".") {
		return field
	}
	return d.Table + "." + field
}

// filtered builds the shared predicate of List/ListAll and the COUNT query:
// active flag, exact-match filters, then the OR-group of LIKE search.
func (r *TablaRepository) filtered(ctx context.Context, d *tabla.Descriptor, q tabla.ListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Table(d.Table)
	if d.Joins != "" {
		tx = tx.Joins(d.Joins)
	}
	if a := d.Active(); a != "" && q.Activo != "" {
		tx = tx.Where(qualify(d, a)+" = ?", q.Activo == "true")
	}
	for _, f := range d.AllowedFilters {
		if v, ok := q.Filters[f]; ok && v != "" {
			tx = tx.Where(qualify(d, f)+" = ?", v)
		}
	}
	if q.Q != "" && len(d.SearchFields) > 0 {
		like := "%" + q.Q + "%"
		clauses := make([]string, 0, len(d.SearchFields))
		args := make([]any, 0, len(d.SearchFields))
		for _, f := range d.SearchFields {
			clauses = append(clauses, qualify(d, f)+" LIKE ?")
			args = append(args, like)
		}
		tx = tx.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return tx
}

func (r *TablaRepository) List(ctx context.Context, d *tabla.Descriptor, q tabla.ListQuery) ([]tabla.Row, int64, error) {
	var total int64
	if err := r.filtered(ctx, d, q).Distinct(d.Table + ".id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []tabla.Row
	err := r.filtered(ctx, d, q).
		Select(strings.Join(d.Projection(), ", ")).
		Order(d.Table + ".id DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return normalizeRows(rows), total, nil
}

func (r *TablaRepository) ListAll(ctx context.Context, d *tabla.Descriptor, q tabla.ListQuery) ([]tabla.Row, error) {
	var rows []tabla.Row
	err := r.filtered(ctx, d, q).
		Select(strings.Join(d.Projection(), ", ")).
		Order(d.Table + ".id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

func (r *TablaRepository) Get(ctx context.Context, d *tabla.Descriptor, id int64) (tabla.Row, error) {
	tx := r.db.WithContext(ctx).Table(d.Table)
	if d.Joins != "" {
		tx = tx.Joins(d.Joins)
	}
	row := tabla.Row{}
	err := tx.Select(strings.Join(d.Projection(), ", ")).
		Where(d.Table+".id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return normalizeRow(row), nil
}

func (r *TablaRepository) GetPlain(ctx context.Context, d *tabla.Descriptor, id int64) (tabla.Row, error) {
	row := tabla.Row{}
	err := r.db.WithContext(ctx).Table(d.Table).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return normalizeRow(row), nil
}

// Insert builds a parameterized INSERT from the column map. Column names are
// checked against the schema captured at startup, never interpolated from
// client input unchecked.
func (r *TablaRepository) Insert(ctx context.Context, d *tabla.Descriptor, data tabla.Row) (int64, error) {
	cols, args, err := writableColumns(d, data)
	if err != nil {
		return 0, err
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("%w: sin columnas", tabla.ErrColumnaDesconocida)
	}

	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "`" + c + "`"
		marks[i] = "?"
	}
	stmt := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES (%s)",
		d.Table, strings.Join(quoted, ", "), strings.Join(marks, ", "))

	res, err := connPool(r.db).ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, r.translate(err)
	}
	return res.LastInsertId()
}

func (r *TablaRepository) Update(ctx context.Context, d *tabla.Descriptor, id int64, data tabla.Row) error {
	if err := r.exists(ctx, d, id); err != nil {
		return err
	}
	cols, args, err := writableColumns(d, data)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return nil
	}
	values := make(map[string]any, len(cols))
	for i, c := range cols {
		values[c] = args[i]
	}
	// RowsAffected is not checked: MySQL reports 0 for no-op updates, which
	// is not a NotFound. Existence was verified above.
	return r.db.WithContext(ctx).Table(d.Table).Where("id = ?", id).Updates(values).Error
}

func (r *TablaRepository) SetActivo(ctx context.Context, d *tabla.Descriptor, id int64, active bool) error {
	a := d.Active()
	if a == "" {
		return fmt.Errorf("tabla %s sin columna de activo", d.Table)
	}
	if err := r.exists(ctx, d, id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Table(d.Table).Where("id = ?", id).
		Updates(map[string]any{a: active}).Error
}

func (r *TablaRepository) ResolveLabel(ctx context.Context, ref tabla.Ref, id any) (string, bool) {
	var out []string
	err := r.db.WithContext(ctx).Table(ref.Table).
		Where("id = ?", id).
		Limit(1).
		Pluck(ref.LabelColumn, &out).Error
	if err != nil || len(out) == 0 {
		return "", false
	}
	return out[0], true
}

func (r *TablaRepository) ResolveLabels(ctx context.Context, ref tabla.Ref, ids []uint64) (map[uint64]string, error) {
	out := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID    uint64 `gorm:"column:id"`
		Label string `gorm:"column:label"`
	}
	err := r.db.WithContext(ctx).Table(ref.Table).
		Select("id, `"+ref.LabelColumn+"` AS label").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Label
	}
	return out, nil
}

func (r *TablaRepository) exists(ctx context.Context, d *tabla.Descriptor, id int64) error {
	var found []int64
	err := r.db.WithContext(ctx).Table(d.Table).
		Where("id = ?", id).
		Limit(1).
		Pluck("id", &found).Error
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// translate routes raw driver errors through the dialector so duplicate-key
// and FK violations match gorm's sentinel errors, same as statements that go
// through gorm callbacks.
func (r *TablaRepository) translate(err error) error {
	if t, ok := r.db.Dialector.(gorm.ErrorTranslator); ok {
		return t.Translate(err)
	}
	return err
}

func connPool(db *gorm.DB) gorm.ConnPool {
	if db.Statement != nil && db.Statement.ConnPool != nil {
		return db.Statement.ConnPool
	}
	return db.ConnPool
}

// writableColumns returns the payload's keys in deterministic order, failing
// on any key the table does not have.
func writableColumns(d *tabla.Descriptor, data tabla.Row) ([]string, []any, error) {
	cols := make([]string, 0, len(data))
	for k := range data {
		if k == "id" {
			continue
		}
		if !d.HasColumn(k) {
			return nil, nil, fmt.Errorf("%w: %q en %s", tabla.ErrColumnaDesconocida, k, d.Table)
		}
		cols = append(cols, k)
	}
	sort.Strings(cols)
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = data[c]
	}
	return cols, args, nil
}

func normalizeRows(rows []tabla.Row) []tabla.Row {
	for i := range rows {
		rows[i] = normalizeRow(rows[i])
	}
	return rows
}

// normalizeRow makes scanned values JSON-friendly: the MySQL driver hands
// text columns back as []byte.
func normalizeRow(row tabla.Row) tabla.Row {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return row
}
