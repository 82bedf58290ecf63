package catalogo

import (
	"context"
	"errors"
)

var ErrUsuarioNotFound = errors.New("usuario no encontrado")

type UsuarioRepository interface {
	// GetByEmail only returns active users; ErrUsuarioNotFound otherwise.
	GetByEmail(ctx context.Context, email string) (*Usuario, error)
	GetByID(ctx context.Context, id uint64) (*Usuario, error)
}
