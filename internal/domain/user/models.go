package user

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
}

// RegisterParams contains the raw registration input before hashing
type RegisterParams struct {
	Email    string
	Name     string
	Password string
}

func (p RegisterParams) Validate() error {
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return errors.New("a valid email is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if len(p.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
