package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmcrae/attire/internal/domain"
)

var _ domain.CustomerStore = (*Store)(nil)

// CreateCustomer inserts the customer and their cart in one transaction so
// every customer is guaranteed a cart.
func (s *Store) CreateCustomer(ctx context.Context, params domain.CreateCustomerParams) (*domain.Customer, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.Internal(err, "customer.create", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	var c domain.Customer
	err = tx.QueryRow(ctx, `
		INSERT INTO customer (email, name, password_hash)
		VALUES (lower($1), $2, $3)
		RETURNING id, email, name, password_hash, created_at`,
		params.Email, params.Name, params.PasswordHash).
		Scan(&c.ID, &c.Email, &c.Name, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, domain.Internal(err, "customer.create", "failed to insert customer")
	}

	if _, err := tx.Exec(ctx, `INSERT INTO cart (customer_id) VALUES ($1)`, c.ID); err != nil {
		return nil, domain.Internal(err, "customer.create", "failed to create cart")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.Internal(err, "customer.create", "failed to commit")
	}
	return &c, nil
}

// CustomerByID resolves a customer reference.
func (s *Store) CustomerByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM customer WHERE id = $1`, id).
		Scan(&c.ID, &c.Email, &c.Name, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidCustomer
		}
		return nil, domain.Internal(err, "customer.get", "failed to get customer")
	}
	return &c, nil
}

// CustomerByEmail looks a customer up by email (case-insensitive).
func (s *Store) CustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var c domain.Customer
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM customer WHERE email = lower($1)`, email).
		Scan(&c.ID, &c.Email, &c.Name, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidCustomer
		}
		return nil, domain.Internal(err, "customer.get", "failed to get customer")
	}
	return &c, nil
}
