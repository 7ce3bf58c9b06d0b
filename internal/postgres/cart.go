package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmcrae/attire/internal/domain"
)

var _ domain.CartStore = (*Store)(nil)

// CreateCart inserts an empty cart for the customer.
func (s *Store) CreateCart(ctx context.Context, customerID uuid.UUID) (*domain.Cart, error) {
	var c domain.Cart
	err := s.pool.QueryRow(ctx,
		`INSERT INTO cart (customer_id) VALUES ($1) RETURNING id, customer_id`,
		customerID).Scan(&c.ID, &c.CustomerID)
	if err != nil {
		return nil, domain.Internal(err, "cart.create", "failed to create cart")
	}
	return &c, nil
}

// CartByCustomer resolves a customer's cart.
func (s *Store) CartByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Cart, error) {
	var c domain.Cart
	err := s.pool.QueryRow(ctx,
		`SELECT id, customer_id FROM cart WHERE customer_id = $1`,
		customerID).Scan(&c.ID, &c.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.Internal(err, "cart.get", "failed to get cart")
	}
	return &c, nil
}

// CartProducts returns the member products of a cart, oldest addition first.
func (s *Store) CartProducts(ctx context.Context, cartID uuid.UUID) ([]domain.Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.sku, p.brand, p.name, p.description, p.category,
		       p.gender, p.price_cents, p.active, p.created_at
		FROM cart_product cp
		JOIN product p ON p.id = cp.product_id
		WHERE cp.cart_id = $1
		ORDER BY cp.added_at, p.id`,
		cartID)
	if err != nil {
		return nil, domain.Internal(err, "cart.products", "failed to query cart products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "cart.products", "failed to scan cart product")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "cart.products", "failed to query cart products")
	}
	return products, nil
}

// AddProduct inserts the membership row. The (cart_id, product_id) primary
// key turns a duplicate add into ErrProductInCart, which also serializes
// concurrent adds of the same product.
func (s *Store) AddProduct(ctx context.Context, cartID, productID uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO cart_product (cart_id, product_id) VALUES ($1, $2)`,
		cartID, productID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductInCart
		}
		return domain.Internal(err, "cart.add", "failed to add product to cart")
	}
	return nil
}

// RemoveProduct deletes the membership row; a concurrent double remove sees
// zero rows affected and fails with ErrProductNotInCart.
func (s *Store) RemoveProduct(ctx context.Context, cartID, productID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM cart_product WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID)
	if err != nil {
		return domain.Internal(err, "cart.remove", "failed to remove product from cart")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotInCart
	}
	return nil
}
