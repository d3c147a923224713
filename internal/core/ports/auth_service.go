package ports

import (
	"context"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create a new account.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Address   string
}

// AuthService defines registration and login use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
