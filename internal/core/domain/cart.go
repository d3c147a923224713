package domain

import "errors"

var ErrEmptyCart = errors.New("shopping cart is empty")
var ErrInvalidQuantity = errors.New("quantity must be positive")

// CartItem is one product line in a user's shopping cart.
type CartItem struct {
	Username  string `json:"username" bson:"username"`
	ProductID int64  `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}
