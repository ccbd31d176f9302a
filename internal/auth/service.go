// Package auth implements registration, login, and bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jcmexdev/shoply-api/internal/auth/domain"
)

// Repository is the port to the user document store.
type Repository interface {
	// Insert persists a new user; domain.ErrEmailTaken when the email is
	// already registered.
	Insert(ctx context.Context, u domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// ValidationError reports per-field failures of a register/login payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid credentials payload: " + strings.Join(parts, "; ")
}

type Service struct {
	repo   Repository
	tokens *TokenIssuer
}

func NewService(repo Repository, tokens *TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a user account with role "user" and returns it together
// with a freshly issued bearer token. Admin accounts are provisioned out of
// band, never through this endpoint.
func (s *Service) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	fields := map[string]string{}
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		fields["name"] = "is required"
	}
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if len(password) < 6 {
		fields["password"] = "must be at least 6 characters"
	}
	if len(fields) > 0 {
		return domain.User{}, "", &ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("auth: hash password: %w", err)
	}

	user, err := s.repo.Insert(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies the credentials and issues a bearer token. The same
// ErrInvalidCredentials comes back for an unknown email and a wrong
// password, so the endpoint does not leak which one failed.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, "", fmt.Errorf("auth: look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// VerifyToken exposes token verification for the HTTP middleware.
func (s *Service) VerifyToken(raw string) (Claims, error) {
	return s.tokens.Verify(raw)
}
