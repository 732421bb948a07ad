package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Service struct {
	DB       *pgxpool.Pool
	Secret   string
	TokenTTL time.Duration
}

func NewService(db *pgxpool.Pool, secret string, ttl time.Duration) *Service {
	return &Service{DB: db, Secret: secret, TokenTTL: ttl}
}

type LoginResult struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	var hash string
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, role, password_hash
    FROM users
    WHERE email = $1 AND active = true
  `, email).Scan(&result.ID, &result.Name, &result.Email, &result.Role, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if err := CheckPassword(hash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.Secret, result.ID, result.Email, result.Role, s.TokenTTL)
	if err != nil {
		return LoginResult{}, err
	}
	result.Token = token
	return result, nil
}
