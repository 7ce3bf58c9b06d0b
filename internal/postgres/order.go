package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmcrae/attire/internal/domain"
)

var _ domain.OrderStore = (*Store)(nil)

// CreateOrder persists a fully allocated order in one transaction. Each
// line's units are claimed with `UPDATE ... AND NOT sold`; if any unit was
// already sold the row count comes up short, the transaction rolls back and
// nothing is persisted.
func (s *Store) CreateOrder(ctx context.Context, params domain.CreateOrderParams) (*domain.Order, error) {
	addressJSON, err := json.Marshal(params.ShippingAddress)
	if err != nil {
		return nil, domain.Internal(err, "order.create", "failed to encode shipping address")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.Internal(err, "order.create", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	for _, line := range params.Lines {
		tag, err := tx.Exec(ctx,
			`UPDATE inventory_unit SET sold = TRUE WHERE id = ANY($1) AND NOT sold`,
			line.UnitIDs)
		if err != nil {
			return nil, domain.Internal(err, "order.create", "failed to claim inventory units")
		}
		if int(tag.RowsAffected()) != len(line.UnitIDs) {
			return nil, domain.ErrUnitAlreadySold
		}
	}

	order := domain.Order{
		CustomerID:      params.CustomerID,
		CreatedAt:       params.CreatedAt,
		ShippingAddress: params.ShippingAddress,
		Cancelled:       false,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO customer_order (customer_id, created_at, shipping_address)
		VALUES ($1, $2, $3)
		RETURNING id`,
		params.CustomerID, params.CreatedAt, addressJSON).Scan(&order.ID)
	if err != nil {
		return nil, domain.Internal(err, "order.create", "failed to insert order")
	}

	for _, line := range params.Lines {
		for _, unitID := range line.UnitIDs {
			var item domain.OrderLineItem
			err = tx.QueryRow(ctx, `
				INSERT INTO order_line_item (order_id, product_id, size, unit_id)
				VALUES ($1, $2, $3, $4)
				RETURNING id, order_id, product_id, size, unit_id, returned`,
				order.ID, line.ProductID, line.Size, unitID).
				Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Size, &item.UnitID, &item.Returned)
			if err != nil {
				if isUniqueViolation(err) {
					// unit_id UNIQUE: the unit is bound to another order.
					return nil, domain.ErrUnitAlreadySold
				}
				return nil, domain.Internal(err, "order.create", "failed to insert order line item")
			}
			order.Lines = append(order.Lines, item)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.Internal(err, "order.create", "failed to commit order")
	}
	return &order, nil
}

// OrderByID loads an order with its line items.
func (s *Store) OrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.scanOrderRow(s.pool.QueryRow(ctx, `
		SELECT id, customer_id, created_at, shipping_address, cancelled
		FROM customer_order WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, "order.get", "failed to get order")
	}

	lines, err := s.orderLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

// OrdersByCustomer loads a customer's orders with line items, oldest first.
func (s *Store) OrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, customer_id, created_at, shipping_address, cancelled
		FROM customer_order
		WHERE customer_id = $1
		ORDER BY created_at, id`,
		customerID)
	if err != nil {
		return nil, domain.Internal(err, "order.list", "failed to query orders")
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := s.scanOrderRow(rows)
		if err != nil {
			return nil, domain.Internal(err, "order.list", "failed to scan order")
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.list", "failed to query orders")
	}

	for i := range orders {
		lines, err := s.orderLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

func (s *Store) scanOrderRow(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var addressJSON []byte
	err := row.Scan(&order.ID, &order.CustomerID, &order.CreatedAt, &addressJSON, &order.Cancelled)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) orderLines(ctx context.Context, orderID uuid.UUID) ([]domain.OrderLineItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, order_id, product_id, size, unit_id, returned
		FROM order_line_item
		WHERE order_id = $1
		ORDER BY id`,
		orderID)
	if err != nil {
		return nil, domain.Internal(err, "order.lines", "failed to query order line items")
	}
	defer rows.Close()

	var lines []domain.OrderLineItem
	for rows.Next() {
		var item domain.OrderLineItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Size, &item.UnitID, &item.Returned); err != nil {
			return nil, domain.Internal(err, "order.lines", "failed to scan order line item")
		}
		lines = append(lines, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "order.lines", "failed to query order line items")
	}
	return lines, nil
}
