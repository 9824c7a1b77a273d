package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gerald0n/finmoni-api/internal/database"
	"github.com/gerald0n/finmoni-api/internal/models"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type AuthService struct {
	db  *database.DB
	jwt *JWTService
}

func NewAuthService(db *database.DB, jwt *JWTService) *AuthService {
	return &AuthService{db: db, jwt: jwt}
}

func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, provider)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, provider, provider_id, created_at, updated_at
	`, name, email, string(hash), models.ProviderLocal).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*TokenPair, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, provider, provider_id, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// OAuth-only accounts have no password hash
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.jwt.GenerateTokenPair(user.ID, user.Email)
}
