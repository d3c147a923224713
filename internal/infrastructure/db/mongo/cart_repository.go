package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
)

const cartCollection = "cart_items"

type MongoCartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{coll: db.Collection(cartCollection)}
}

func (r *MongoCartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	filter := bson.M{"username": item.Username, "product_id": item.ProductID}
	update := bson.M{"$set": bson.M{"quantity": item.Quantity}}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (r *MongoCartRepository) Remove(ctx context.Context, username string, productID int64) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"username": username, "product_id": productID})
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

func (r *MongoCartRepository) ItemsFor(ctx context.Context, username string) ([]*domain.CartItem, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"username": username})
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.CartItem
	for cursor.Next(ctx) {
		var item domain.CartItem
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("decode cart item: %w", err)
		}
		items = append(items, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

func (r *MongoCartRepository) Clear(ctx context.Context, username string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
