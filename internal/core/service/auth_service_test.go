package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
	"github.com/kaffehuset/coffeeshop-api/internal/core/ports"
)

const testSecret = "test-secret"

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:  "alice",
		Password:  "s3cret",
		FirstName: "Alice",
		LastName:  "Andersen",
		Email:     "alice@example.com",
		Address:   "Kaffegata 1, Trondheim",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected assigned ID")
	}
	if !user.HasRole(domain.RoleUser) {
		t.Fatal("new user missing ROLE_USER")
	}
	if user.HasRole(domain.RoleAdmin) {
		t.Fatal("new user must not be admin")
	}
	if user.PasswordHash == "s3cret" {
		t.Fatal("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")) != nil {
		t.Fatal("stored hash does not verify the password")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo(testUser(1, "alice", domain.RoleUser))
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Password: "pw",
		Email:    "alice@example.com",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	for _, input := range []ports.RegisterInput{
		{Password: "pw", Email: "a@example.com"},
		{Username: "alice", Email: "a@example.com"},
		{Username: "alice", Password: "pw"},
	} {
		if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %+v, got %v", input, err)
		}
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Password: "s3cret",
		Email:    "alice@example.com",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("user = %q", user.Username)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["username"] != "alice" {
		t.Fatalf("username claim = %v", claims["username"])
	}
	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 1 || roles[0] != "ROLE_USER" {
		t.Fatalf("roles claim = %v", claims["roles"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Password: "s3cret",
		Email:    "alice@example.com",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "pw"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
