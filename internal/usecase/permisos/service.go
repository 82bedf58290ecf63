package permisos

import (
	"context"
	"errors"

	"boveda-lols-backend/internal/apperr"
	permisoDomain "boveda-lols-backend/internal/domain/permiso"
	"boveda-lols-backend/internal/domain/uow"
)

type Service struct {
	uow  uow.UnitOfWork
	repo permisoDomain.Repository
}

func NewService(u uow.UnitOfWork, repo permisoDomain.Repository) *Service {
	return &Service{uow: u, repo: repo}
}

type PermisoInput struct {
	Modulo   string `json:"modulo" validate:"required"`
	Ver      bool   `json:"ver"`
	Crear    bool   `json:"crear"`
	Editar   bool   `json:"editar"`
	Eliminar bool   `json:"eliminar"`
}

// GuardarRol replaces the role's whole permission set in one transaction.
// A failing insert leaves the previous set untouched.
func (s *Service) GuardarRol(ctx context.Context, rolID uint64, permisos []PermisoInput) error {
	vistos := map[string]struct{}{}
	for _, p := range permisos {
		if _, dup := vistos[p.Modulo]; dup {
			return apperr.Validation("módulo repetido: " + p.Modulo)
		}
		vistos[p.Modulo] = struct{}{}
	}

	return s.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Permisos.DeleteByRol(ctx, rolID); err != nil {
			return err
		}
		for _, p := range permisos {
			row := &permisoDomain.Permiso{
				RolID:    rolID,
				Modulo:   p.Modulo,
				Ver:      p.Ver,
				Crear:    p.Crear,
				Editar:   p.Editar,
				Eliminar: p.Eliminar,
			}
			if err := r.Permisos.Create(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) ListByRol(ctx context.Context, rolID uint64) ([]permisoDomain.Permiso, error) {
	out, err := s.repo.ListByRol(ctx, rolID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []permisoDomain.Permiso{}
	}
	return out, nil
}

// Autorizar returns PermissionDenied unless the role grants the action on
// the module. A missing permission row denies.
func (s *Service) Autorizar(ctx context.Context, rolID uint64, modulo, accion string) error {
	p, err := s.repo.GetByRolModulo(ctx, rolID, modulo)
	if errors.Is(err, permisoDomain.ErrNotFound) {
		return apperr.PermissionDenied(modulo, accion)
	}
	if err != nil {
		return err
	}
	if !p.Permite(accion) {
		return apperr.PermissionDenied(modulo, accion)
	}
	return nil
}
