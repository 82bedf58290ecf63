package tabla

import (
	"context"
	"errors"
	"math"

	"boveda-lols-backend/internal/apperr"
	"boveda-lols-backend/internal/domain/tabla"

	"gorm.io/gorm"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Service implements list/get/create/update/soft-delete for one descriptor.
// There is no per-entity service type; handlers hold one of these per module.
type Service struct {
	repo tabla.Repository
	desc *tabla.Descriptor
}

func NewService(repo tabla.Repository, desc *tabla.Descriptor) *Service {
	return &Service{repo: repo, desc: desc}
}

func (s *Service) Descriptor() *tabla.Descriptor { return s.desc }

func clampQuery(q tabla.ListQuery) tabla.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return q
}

func (s *Service) List(ctx context.Context, q tabla.ListQuery) (*tabla.Page, error) {
	q = clampQuery(q)
	rows, total, err := s.repo.List(ctx, s.desc, q)
	if err != nil {
		return nil, s.wrap(err)
	}
	if rows == nil {
		rows = []tabla.Row{}
	}
	s.derivar(rows)
	return &tabla.Page{
		Data: rows,
		Pagination: tabla.Pagination{
			Page:  q.Page,
			Limit: q.Limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(q.Limit))),
		},
	}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (tabla.Row, error) {
	row, err := s.repo.Get(ctx, s.desc, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	s.derivar([]tabla.Row{row})
	return row, nil
}

func (s *Service) Create(ctx context.Context, data tabla.Row) (tabla.Row, error) {
	delete(data, "id")
	id, err := s.repo.Insert(ctx, s.desc, data)
	if err != nil {
		return nil, s.wrap(err)
	}
	out := tabla.Row{"id": id}
	for k, v := range data {
		out[k] = v
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, data tabla.Row) error {
	delete(data, "id")
	return s.wrap(s.repo.Update(ctx, s.desc, id, data))
}

func (s *Service) SoftDelete(ctx context.Context, id int64) error {
	if s.desc.Active() == "" {
		return apperr.Validation("el módulo " + s.desc.Modulo + " no admite eliminación")
	}
	return s.wrap(s.repo.SetActivo(ctx, s.desc, id, false))
}

// ExportRows selects every row matching the same predicate List uses, without
// pagination. Rendering is the caller's problem.
func (s *Service) ExportRows(ctx context.Context, q tabla.ListQuery) ([]tabla.Row, error) {
	q.Page, q.Limit = 1, 0
	rows, err := s.repo.ListAll(ctx, s.desc, q)
	if err != nil {
		return nil, s.wrap(err)
	}
	s.derivar(rows)
	return rows, nil
}

func (s *Service) derivar(rows []tabla.Row) {
	if s.desc.Derive == nil {
		return
	}
	for _, row := range rows {
		s.desc.Derive(row)
	}
}

func (s *Service) wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(s.desc.Modulo)
	case errors.Is(err, tabla.ErrColumnaDesconocida):
		return apperr.Validation(err.Error())
	default:
		return err
	}
}
