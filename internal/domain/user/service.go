package user

import (
	"context"
	"strings"

	"finsight/internal/shared/auth"
)

// Service contains the business logic for registration and login
type Service struct {
	repo Repository
	jwt  *auth.JWT
}

func NewService(repo Repository, jwt *auth.JWT) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Register creates a new user and returns the user plus a signed JWT.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, string, error) {
	if err := params.Validate(); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	u, err := s.repo.Create(ctx, CreateUserParams{
		Email:        email,
		Name:         params.Name,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// Login verifies credentials and returns the user plus a signed JWT.
// Wrong email and wrong password both map to ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// GetByID returns a user by primary key.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
