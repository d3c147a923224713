package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
)

const usersCollection = "users"

type MongoUserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{db: db, coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	UserID       int64       `bson:"user_id"`
	Username     string      `bson:"username"`
	PasswordHash string      `bson:"password_hash"`
	FirstName    string      `bson:"first_name"`
	LastName     string      `bson:"last_name"`
	Email        string      `bson:"email"`
	Address      string      `bson:"address"`
	Active       bool        `bson:"active"`
	CreatedAt    int64       `bson:"created_at"`
	Roles        []mongoRole `bson:"roles"`
}

type mongoRole struct {
	Name string `bson:"name"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := nextSequence(ctx, r.db, "user_id")
	if err != nil {
		return nil, err
	}

	doc := toMongoUser(user)
	doc.UserID = id

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := fromMongoUser(doc)
	return created, nil
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"user_id": id})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromMongoUser(mu), nil
}

// Update rewrites the mutable fields in a single document update keyed by
// user_id. The id and created_at fields are deliberately absent from the
// $set document, so they cannot change through this path.
func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	roles := make([]mongoRole, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, mongoRole{Name: string(role.Name)})
	}

	update := bson.M{"$set": bson.M{
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"address":    user.Address,
		"active":     user.Active,
		"roles":      roles,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"user_id": user.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"user_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) All(ctx context.Context) ([]*domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, fromMongoUser(mu))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func toMongoUser(u *domain.User) mongoUser {
	roles := make([]mongoRole, 0, len(u.Roles))
	for _, role := range u.Roles {
		roles = append(roles, mongoRole{Name: string(role.Name)})
	}
	return mongoUser{
		UserID:       u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Address:      u.Address,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt.Unix(),
		Roles:        roles,
	}
}

func fromMongoUser(mu mongoUser) *domain.User {
	roles := make([]domain.Role, 0, len(mu.Roles))
	for _, role := range mu.Roles {
		roles = append(roles, domain.Role{Name: domain.RoleName(role.Name)})
	}
	return &domain.User{
		ID:           mu.UserID,
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		Email:        mu.Email,
		Address:      mu.Address,
		Active:       mu.Active,
		CreatedAt:    unixToTime(mu.CreatedAt),
		Roles:        roles,
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
