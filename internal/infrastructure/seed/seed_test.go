package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	user.ID = int64(len(r.users) + 1)
	r.users[user.Username] = user
	return user, nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error { return nil }

func (r *memUserRepo) DeleteByID(_ context.Context, id int64) error { return nil }

func (r *memUserRepo) All(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type memProductRepo struct {
	products map[int64]*domain.Product
}

func (r *memProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *memProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	product.ID = int64(len(r.products) + 1)
	r.products[product.ID] = product
	return product, nil
}

func (r *memProductRepo) Update(_ context.Context, product *domain.Product) error { return nil }

func (r *memProductRepo) DeleteByID(_ context.Context, id int64) error { return nil }

func (r *memProductRepo) All(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func TestRun_EmptyDatabase(t *testing.T) {
	users := &memUserRepo{users: make(map[string]*domain.User)}
	products := &memProductRepo{products: make(map[int64]*domain.Product)}

	if err := Run(context.Background(), users, products, zerolog.Nop()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(users.users) != 2 {
		t.Fatalf("seeded %d users, want 2", len(users.users))
	}
	if len(products.products) != 3 {
		t.Fatalf("seeded %d products, want 3", len(products.products))
	}

	admin := users.users["admin"]
	if admin == nil {
		t.Fatal("admin account missing")
	}
	if !admin.HasRole(domain.RoleUser) || !admin.HasRole(domain.RoleAdmin) {
		t.Fatalf("admin roles = %v", admin.RoleNames())
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin")) != nil {
		t.Fatal("admin password hash does not verify")
	}

	regular := users.users["testUser"]
	if regular == nil {
		t.Fatal("testUser account missing")
	}
	if regular.HasRole(domain.RoleAdmin) {
		t.Fatal("testUser must not be admin")
	}
}

func TestRun_SkipsWhenDataExists(t *testing.T) {
	existing := &domain.User{ID: 1, Username: "alice"}
	users := &memUserRepo{users: map[string]*domain.User{"alice": existing}}
	products := &memProductRepo{products: map[int64]*domain.Product{
		1: {ID: 1, Name: "House blend", Price: 90},
	}}

	if err := Run(context.Background(), users, products, zerolog.Nop()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(users.users) != 1 {
		t.Fatalf("user count changed to %d", len(users.users))
	}
	if len(products.products) != 1 {
		t.Fatalf("product count changed to %d", len(products.products))
	}
}
