package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmcrae/attire/internal/domain"
)

var _ domain.ProductStore = (*Store)(nil)

const productColumns = "id, sku, brand, name, description, category, gender, price_cents, active, created_at"

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Brand, &p.Name, &p.Description,
		&p.Category, &p.Gender, &p.PriceCents, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a new active product.
func (s *Store) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO product (brand, name, description, category, gender, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		params.Brand, params.Name, params.Description,
		params.Category, params.Gender, params.PriceCents)

	p, err := scanProduct(row)
	if err != nil {
		return nil, domain.Internal(err, "product.create", "failed to create product")
	}
	return p, nil
}

// ProductByID retrieves a product by ID, including archived ones.
func (s *Store) ProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM product WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "product.get", "failed to get product")
	}
	return p, nil
}

// ListActiveProducts returns active products matching the filter, oldest first.
func (s *Store) ListActiveProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE active`
	args := []any{}
	if filter.Gender != "" {
		args = append(args, filter.Gender)
		query += ` AND gender = $1`
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		if len(args) == 1 {
			query += ` AND category = $1`
		} else {
			query += ` AND category = $2`
		}
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "product.list", "failed to scan product")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}
	return products, nil
}

// UpdateProduct updates the nullable fields of a product.
func (s *Store) UpdateProduct(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE product
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description)
		WHERE id = $1`,
		id, params.Name, params.Description)
	if err != nil {
		return domain.Internal(err, "product.update", "failed to update product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// SetProductActive flips the active flag.
func (s *Store) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE product SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return domain.Internal(err, "product.set_active", "failed to update product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
