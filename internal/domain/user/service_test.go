package user

import (
	"context"
	"errors"
	"testing"

	"finsight/internal/shared/auth"
)

type mockRepo struct {
	CreateFunc     func(ctx context.Context, params CreateUserParams) (*User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*User, error)
}

func (m *mockRepo) Create(ctx context.Context, params CreateUserParams) (*User, error) {
	return m.CreateFunc(ctx, params)
}
func (m *mockRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, auth.NewJWT("test-secret"))
}

func TestRegister_Success(t *testing.T) {
	repo := &mockRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			return nil, ErrUserNotFound
		},
		CreateFunc: func(ctx context.Context, params CreateUserParams) (*User, error) {
			if params.Email != "alice@example.com" {
				t.Errorf("Create email = %q, want lowercased trimmed", params.Email)
			}
			if params.PasswordHash == "" || params.PasswordHash == "hunter2secret" {
				t.Error("password should be stored hashed")
			}
			return &User{ID: 1, Email: params.Email, Name: params.Name, PasswordHash: params.PasswordHash}, nil
		},
	}

	u, token, err := newTestService(repo).Register(context.Background(), RegisterParams{
		Email:    " Alice@Example.com ",
		Name:     "Alice",
		Password: "hunter2secret",
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if u.ID != 1 {
		t.Errorf("user ID = %d, want 1", u.ID)
	}
	if token == "" {
		t.Error("expected a JWT token")
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params RegisterParams
	}{
		{"missing email", RegisterParams{Name: "A", Password: "longenough"}},
		{"invalid email", RegisterParams{Email: "not-an-email", Name: "A", Password: "longenough"}},
		{"missing name", RegisterParams{Email: "a@b.com", Password: "longenough"}},
		{"short password", RegisterParams{Email: "a@b.com", Name: "A", Password: "short"}},
	}

	svc := newTestService(&mockRepo{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Register(context.Background(), tt.params); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := &mockRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			return &User{ID: 7, Email: email}, nil
		},
	}

	_, _, err := newTestService(repo).Register(context.Background(), RegisterParams{
		Email:    "taken@example.com",
		Name:     "Bob",
		Password: "longenough",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("correct-password")
	if err != nil {
		t.Fatal(err)
	}
	stored := &User{ID: 3, Email: "carol@example.com", PasswordHash: hash}

	repo := &mockRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, ErrUserNotFound
		},
	}
	svc := newTestService(repo)

	t.Run("success", func(t *testing.T) {
		u, token, err := svc.Login(context.Background(), "carol@example.com", "correct-password")
		if err != nil {
			t.Fatalf("Login() failed: %v", err)
		}
		if u.ID != 3 || token == "" {
			t.Errorf("unexpected login result: id=%d token=%q", u.ID, token)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "carol@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "", "")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}
