package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Order domain errors.
var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrInsufficientStock = &Error{Code: ECONFLICT, Message: "Not enough stock"}
	ErrEmptyOrder        = &Error{Code: EINVALID, Message: "Order has no items"}
	ErrInvalidQuantity   = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// Order is an immutable record of allocated inventory. Its line items and
// their bound units never change after creation; cancellation and returns
// only flip flags.
type Order struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	CreatedAt       time.Time
	ShippingAddress Address
	Cancelled       bool
	Lines           []OrderLineItem
}

// OrderLineItem binds exactly one inventory unit to an order.
type OrderLineItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Size      Size
	UnitID    uuid.UUID
	Returned  bool
}

// OrderSummary is a condensed order view for listings. TotalCents is derived
// from current product prices at read time.
type OrderSummary struct {
	ID              uuid.UUID
	CreatedAt       time.Time
	ShippingAddress Address
	ItemCount       int
	TotalCents      int64
}

// OrderLineDetail is a line item joined with its product.
type OrderLineDetail struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	Brand      string
	Name       string
	Size       Size
	PriceCents int64
	Returned   bool
}

// OrderDetail is a full order view. TotalCents is derived at read time.
type OrderDetail struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	CreatedAt       time.Time
	ShippingAddress Address
	Cancelled       bool
	TotalCents      int64
	Lines           []OrderLineDetail
}

// AllocatedLine names the units claimed for one requested order line.
type AllocatedLine struct {
	ProductID uuid.UUID
	Size      Size
	UnitIDs   []uuid.UUID
}

// CreateOrderParams describes a fully allocated order ready to persist.
type CreateOrderParams struct {
	CustomerID      uuid.UUID
	CreatedAt       time.Time
	ShippingAddress Address
	Lines           []AllocatedLine
}

// OrderStore persists orders. CreateOrder is a single atomic scope: every
// referenced unit transitions unsold->sold and the order with its line items
// is inserted, or nothing happens at all. A unit found already sold fails the
// whole creation with ErrUnitAlreadySold.
type OrderStore interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	OrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)
}

// OrderItemInput is one requested (product, size, quantity) line.
type OrderItemInput struct {
	ProductID uuid.UUID
	Size      Size
	Quantity  int
}

// CreateOrderInput is an order request from a customer.
type CreateOrderInput struct {
	CustomerID      uuid.UUID
	Items           []OrderItemInput
	ShippingAddress Address
}

// OrderService is the allocation engine and order query surface.
type OrderService interface {
	// CreateOrder converts requested line items into bound inventory units
	// and persists an immutable order, or fails atomically: on any error no
	// unit changes state and no order is persisted.
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderSummary, error)

	// Order returns full order details with a read-time derived total.
	// Fails with ENOTFOUND if absent.
	Order(ctx context.Context, id uuid.UUID) (*OrderDetail, error)

	// CustomerOrders returns summaries for a customer, oldest first.
	// Returns an empty slice if the customer has no orders.
	CustomerOrders(ctx context.Context, customerID uuid.UUID) ([]OrderSummary, error)
}
