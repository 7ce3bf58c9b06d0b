package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jmcrae/attire/internal/domain"
)

var _ domain.InventoryStore = (*Store)(nil)

// AddUnits inserts count unsold units for (productID, size).
func (s *Store) AddUnits(ctx context.Context, productID uuid.UUID, size domain.Size, count int) ([]domain.InventoryUnit, error) {
	rows, err := s.pool.Query(ctx, `
		INSERT INTO inventory_unit (product_id, size)
		SELECT $1, $2 FROM generate_series(1, $3)
		RETURNING id, product_id, size, sold, seq`,
		productID, size, count)
	if err != nil {
		return nil, domain.Internal(err, "inventory.add_units", "failed to add inventory units")
	}
	defer rows.Close()

	var units []domain.InventoryUnit
	for rows.Next() {
		var u domain.InventoryUnit
		if err := rows.Scan(&u.ID, &u.ProductID, &u.Size, &u.Sold, &u.Seq); err != nil {
			return nil, domain.Internal(err, "inventory.add_units", "failed to scan inventory unit")
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "inventory.add_units", "failed to add inventory units")
	}
	return units, nil
}

// AvailableUnits returns unsold units for (productID, size) in creation order.
func (s *Store) AvailableUnits(ctx context.Context, productID uuid.UUID, size domain.Size) ([]domain.InventoryUnit, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, product_id, size, sold, seq
		FROM inventory_unit
		WHERE product_id = $1 AND size = $2 AND NOT sold
		ORDER BY seq`,
		productID, size)
	if err != nil {
		return nil, domain.Internal(err, "inventory.available", "failed to query available units")
	}
	defer rows.Close()

	var units []domain.InventoryUnit
	for rows.Next() {
		var u domain.InventoryUnit
		if err := rows.Scan(&u.ID, &u.ProductID, &u.Size, &u.Sold, &u.Seq); err != nil {
			return nil, domain.Internal(err, "inventory.available", "failed to scan inventory unit")
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "inventory.available", "failed to query available units")
	}
	return units, nil
}

// StockBySize counts unsold units per size for a product.
func (s *Store) StockBySize(ctx context.Context, productID uuid.UUID) (map[domain.Size]int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT size, COUNT(*)
		FROM inventory_unit
		WHERE product_id = $1 AND NOT sold
		GROUP BY size`,
		productID)
	if err != nil {
		return nil, domain.Internal(err, "inventory.stock", "failed to query stock")
	}
	defer rows.Close()

	stock := make(map[domain.Size]int)
	for rows.Next() {
		var size domain.Size
		var count int
		if err := rows.Scan(&size, &count); err != nil {
			return nil, domain.Internal(err, "inventory.stock", "failed to scan stock row")
		}
		stock[size] = count
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "inventory.stock", "failed to query stock")
	}
	return stock, nil
}

// MarkUnitSold claims a single unit with a conditional update. The
// `AND NOT sold` predicate makes the false->true transition atomic.
func (s *Store) MarkUnitSold(ctx context.Context, unitID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE inventory_unit SET sold = TRUE WHERE id = $1 AND NOT sold`, unitID)
	if err != nil {
		return domain.Internal(err, "inventory.mark_sold", "failed to mark unit sold")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnitAlreadySold
	}
	return nil
}
