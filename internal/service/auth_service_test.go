package service

import (
	"errors"
	"testing"

	"tms_backend/internal/config"
	"tms_backend/internal/model"
	"tms_backend/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	req := RegisterReq{
		Email:     "student@example.com",
		Password:  "correct-horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	user, err := svc.Register(req)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.Student {
		t.Errorf("new user role = %q, want student", user.Role)
	}
	if user.PasswordHash == req.Password {
		t.Error("password stored in plain text")
	}

	got, err := svc.Login(LoginReq{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("login returned user %s, want %s", got.ID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	req := RegisterReq{Email: "dup@example.com", Password: "password1", FirstName: "A", LastName: "B"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(req); !errors.Is(err, ErrEmailRegistered) {
		t.Errorf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)

	req := RegisterReq{Email: "u@example.com", Password: "password1", FirstName: "A", LastName: "B"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(LoginReq{Email: req.Email, Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(LoginReq{Email: "ghost@example.com", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateRole(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(RegisterReq{Email: "t@example.com", Password: "password1", FirstName: "A", LastName: "B"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateRole(user.ID, model.Teacher)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != model.Teacher {
		t.Errorf("role = %q, want teacher", updated.Role)
	}

	if _, err := svc.UpdateRole(user.ID, model.UserRole("superuser")); err == nil {
		t.Error("unknown role accepted")
	}
}
