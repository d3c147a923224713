// Package seed inserts development fixtures into an empty database at
// startup: two accounts (one admin) and a handful of catalog products.
// Seeding is skipped entirely as soon as any data exists.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
	"github.com/kaffehuset/coffeeshop-api/internal/core/ports"
)

// Run seeds users and products when their collections are empty.
func Run(ctx context.Context, users ports.UserRepository, products ports.ProductRepository, log zerolog.Logger) error {
	if err := seedUsers(ctx, users, log); err != nil {
		return err
	}
	return seedProducts(ctx, products, log)
}

func seedUsers(ctx context.Context, users ports.UserRepository, log zerolog.Logger) error {
	n, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if n > 0 {
		log.Info().Msg("users already in the database, not importing anything")
		return nil
	}

	log.Info().Msg("importing test users")

	testUser := &domain.User{
		Username:     "testUser",
		PasswordHash: mustHash("user"),
		FirstName:    "Test",
		LastName:     "User",
		Email:        "test.user@example.com",
		Address:      "Kaffegata 1, Trondheim",
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	testUser.AddRole(domain.RoleUser)

	adminUser := &domain.User{
		Username:     "admin",
		PasswordHash: mustHash("admin"),
		FirstName:    "Admin",
		LastName:     "Man",
		Email:        "admin@example.com",
		Address:      "Kaffegata 2, Trondheim",
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	adminUser.AddRole(domain.RoleUser)
	adminUser.AddRole(domain.RoleAdmin)

	for _, u := range []*domain.User{adminUser, testUser} {
		if _, err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed: create user %s: %w", u.Username, err)
		}
	}

	log.Info().Msg("done importing test users")
	return nil
}

func seedProducts(ctx context.Context, products ports.ProductRepository, log zerolog.Logger) error {
	n, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count products: %w", err)
	}
	if n > 0 {
		log.Info().Msg("products already in the database, not importing anything")
		return nil
	}

	log.Info().Msg("importing test products")

	fixtures := []*domain.Product{
		{Name: "Brazilian coffee", Price: 80, Description: "ground, 500 grams"},
		{Name: "Green tea", Price: 50, Description: "200 grams"},
		{Name: "Peru coffee beans", Price: 120, Description: "500 grams"},
	}

	for _, p := range fixtures {
		p.CreatedAt = time.Now().UTC()
		if _, err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("seed: create product %s: %w", p.Name, err)
		}
	}

	log.Info().Msg("done importing test products")
	return nil
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("seed: hash password: %v", err))
	}
	return string(hash)
}
