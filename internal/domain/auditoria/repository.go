package auditoria

import "context"

type ListQuery struct {
	Q     string
	Page  int
	Limit int
}

type LogRow struct {
	LogAuditoria
	UsuarioNombre string `json:"usuario_nombre"`
}

type Repository interface {
	Insert(ctx context.Context, l *LogAuditoria) error
	// List searches module, detalle and user name, newest first.
	List(ctx context.Context, q ListQuery) ([]LogRow, int64, error)
}
