package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pygely_backend/internal/model"
	"pygely_backend/internal/util"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, RegisterInput{Name: "Ana", Email: " Ana@Example.com ", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.Student || user.Email != "ana@example.com" {
		t.Fatalf("user = %+v", user)
	}
	if user.Password == "secret123" {
		t.Fatal("password stored in clear text")
	}

	if _, err := f.auth.Register(ctx, RegisterInput{Name: "Ana 2", Email: "ana@example.com", Password: "x"}); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("duplicate register err = %v", err)
	}

	token, logged, err := f.auth.Login(ctx, "ana@example.com", "secret123")
	if err != nil || token == "" || logged.ID != user.ID {
		t.Fatalf("Login = %q, %+v, %v", token, logged, err)
	}
	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil || claims.UserID != user.ID {
		t.Fatalf("claims = %+v, %v", claims, err)
	}

	for _, tc := range []struct{ email, password string }{
		{"ana@example.com", "wrong"},
		{"nobody@example.com", "secret123"},
	} {
		if _, _, err := f.auth.Login(ctx, tc.email, tc.password); !errors.Is(err, util.ErrInvalidCredentials) {
			t.Fatalf("Login(%s) err = %v", tc.email, err)
		}
	}
}

func TestRegisterTeacher(t *testing.T) {
	f := newFixture(t)
	user, err := f.auth.Register(context.Background(), RegisterInput{Name: "Prof", Email: "prof@example.com", Password: "pw", Role: model.Teacher})
	if err != nil || user.Role != model.Teacher {
		t.Fatalf("Register = %+v, %v", user, err)
	}
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, RegisterInput{Name: "Long", Email: "long@example.com", Password: strings.Repeat("p", 100)})
	if !errors.Is(err, util.ErrPasswordTooLong) {
		t.Fatalf("Register err = %v, want ErrPasswordTooLong", err)
	}
	if exists, _ := f.auth.UserRepo.ExistsByEmail(ctx, "long@example.com"); exists {
		t.Fatal("user stored despite rejected password")
	}

	if _, err := f.auth.Register(ctx, RegisterInput{Name: "Edge", Email: "edge@example.com", Password: strings.Repeat("p", 72)}); err != nil {
		t.Fatalf("72-byte password: %v", err)
	}
}
