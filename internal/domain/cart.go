package domain

import (
	"context"

	"github.com/google/uuid"
)

// Cart domain errors.
var (
	ErrCartNotFound     = &Error{Code: EINVALID, Message: "Invalid customer ID"}
	ErrProductInCart    = &Error{Code: ECONFLICT, Message: "Product is already in cart"}
	ErrProductNotInCart = &Error{Code: ECONFLICT, Message: "Product is not in cart"}
)

// Cart is a per-customer membership set of products. It tracks neither size
// nor quantity; a product appears at most once.
type Cart struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
}

// CartDetail is a cart with its member products.
type CartDetail struct {
	CartID   uuid.UUID
	Products []Product
}

// CartStore persists carts and their product membership. AddProduct and
// RemoveProduct are atomic insert-if-absent / delete-if-present primitives;
// concurrent duplicate adds or double removes resolve to exactly one success.
type CartStore interface {
	CreateCart(ctx context.Context, customerID uuid.UUID) (*Cart, error)
	CartByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)
	CartProducts(ctx context.Context, cartID uuid.UUID) ([]Product, error)

	// AddProduct inserts a product into the cart's membership set.
	// Fails with ErrProductInCart if already present.
	AddProduct(ctx context.Context, cartID, productID uuid.UUID) error

	// RemoveProduct removes a product from the cart's membership set.
	// Fails with ErrProductNotInCart if absent.
	RemoveProduct(ctx context.Context, cartID, productID uuid.UUID) error
}

// CartService provides business logic for cart operations.
type CartService interface {
	// Details returns the customer's cart and its products.
	Details(ctx context.Context, customerID uuid.UUID) (*CartDetail, error)

	// AddProduct adds an active product to the customer's cart.
	AddProduct(ctx context.Context, customerID, productID uuid.UUID) error

	// RemoveProduct removes a product from the customer's cart.
	RemoveProduct(ctx context.Context, customerID, productID uuid.UUID) error
}
