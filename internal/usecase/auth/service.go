package auth

import (
	"context"
	"errors"
	"time"

	"boveda-lols-backend/internal/apperr"
	"boveda-lols-backend/internal/domain/catalogo"
	"boveda-lols-backend/pkg/id"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type Claims struct {
	UsuarioID uint64 `json:"usuario_id"`
	RolID     uint64 `json:"rol_id"`
	jwt.RegisteredClaims
}

type Service struct {
	usuarios catalogo.UsuarioRepository
	secret   []byte
	ttl      time.Duration
}

func NewService(usuarios catalogo.UsuarioRepository, secret string, ttl time.Duration) *Service {
	return &Service{usuarios: usuarios, secret: []byte(secret), ttl: ttl}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SesionDTO struct {
	Token   string `json:"token"`
	Usuario struct {
		ID     uint64 `json:"id"`
		Nombre string `json:"nombre"`
		Email  string `json:"email"`
		RolID  uint64 `json:"rol_id"`
	} `json:"usuario"`
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*SesionDTO, error) {
	u, err := s.usuarios.GetByEmail(ctx, in.Email)
	if errors.Is(err, catalogo.ErrUsuarioNotFound) {
		return nil, apperr.Unauthorized("credenciales inválidas")
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, apperr.Unauthorized("credenciales inválidas")
	}

	now := time.Now().UTC()
	claims := Claims{
		UsuarioID: u.ID,
		RolID:     u.RolID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.NewID32(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	dto := &SesionDTO{Token: token}
	dto.Usuario.ID = u.ID
	dto.Usuario.Nombre = u.Nombre
	dto.Usuario.Email = u.Email
	dto.Usuario.RolID = u.RolID
	return dto, nil
}

// Verificar parses and validates a bearer token.
func (s *Service) Verificar(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de firma inesperado")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthorized("token inválido o expirado")
	}
	return claims, nil
}
