// Package tablamock provides a function-backed mock of tabla.Repository for
// usecase tests that do not need a database.
package tablamock

import (
	"context"
	"errors"

	"boveda-lols-backend/internal/domain/tabla"
)

// Repo satisfies tabla.Repository; set only the functions a test needs.
type Repo struct {
	ListFn          func(ctx context.Context, d *tabla.Descriptor, q tabla.ListQuery) ([]tabla.Row, int64, error)
	ListAllFn       func(ctx context.Context, d *tabla.Descriptor, q tabla.ListQuery) ([]tabla.Row, error)
	GetFn           func(ctx context.Context, d *tabla.Descriptor, id int64) (tabla.Row, error)
	GetPlainFn      func(ctx context.Context, d *tabla.Descriptor, id int64) (tabla.Row, error)
	InsertFn        func(ctx context.Context, d *tabla.Descriptor, data tabla.Row) (int64, error)
	UpdateFn        func(ctx context.Context, d *tabla.Descriptor, id int64, data tabla.Row) error
	SetActivoFn     func(ctx context.Context, d *tabla.Descriptor, id int64, active bool) error
	ResolveLabelFn  func(ctx context.Context, ref tabla.Ref, id any) (string, bool)
	ResolveLabelsFn func(ctx context.Context, ref tabla.Ref, ids []uint64) (map[uint64]string, error)
}

var errNotImplemented = errors.New("not implemented")

func (m *Repo) List(ctx context.Context, d *tabla.Descriptor, q tabla.ListQuery) ([]tabla.Row, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, d, q)
	}
	return nil, 0, errNotImplemented
}

func (m *Repo) ListAll(ctx context.Context, d *tabla.Descriptor, q tabla.ListQuery) ([]tabla.Row, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx, d, q)
	}
	return nil, errNotImplemented
}

func (m *Repo) Get(ctx context.Context, d *tabla.Descriptor, id int64) (tabla.Row, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, d, id)
	}
	return nil, errNotImplemented
}

func (m *Repo) GetPlain(ctx context.Context, d *tabla.Descriptor, id int64) (tabla.Row, error) {
	if m.GetPlainFn != nil {
		return m.GetPlainFn(ctx, d, id)
	}
	return nil, errNotImplemented
}

func (m *Repo) Insert(ctx context.Context, d *tabla.Descriptor, data tabla.Row) (int64, error) {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, d, data)
	}
	return 0, errNotImplemented
}

func (m *Repo) Update(ctx context.Context, d *tabla.Descriptor, id int64, data tabla.Row) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, d, id, data)
	}
	return nil
}

func (m *Repo) SetActivo(ctx context.Context, d *tabla.Descriptor, id int64, active bool) error {
	if m.SetActivoFn != nil {
		return m.SetActivoFn(ctx, d, id, active)
	}
	return nil
}

func (m *Repo) ResolveLabel(ctx context.Context, ref tabla.Ref, id any) (string, bool) {
	if m.ResolveLabelFn != nil {
		return m.ResolveLabelFn(ctx, ref, id)
	}
	return "", false
}

func (m *Repo) ResolveLabels(ctx context.Context, ref tabla.Ref, ids []uint64) (map[uint64]string, error) {
	if m.ResolveLabelsFn != nil {
		return m.ResolveLabelsFn(ctx, ref, ids)
	}
	return map[uint64]string{}, nil
}
