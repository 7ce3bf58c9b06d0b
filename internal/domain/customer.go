package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Customer domain errors.
var (
	ErrInvalidCustomer = &Error{Code: EINVALID, Message: "Invalid customer ID"}
	ErrEmailTaken      = &Error{Code: ECONFLICT, Message: "Email is already registered"}
)

// Customer owns exactly one cart (created at registration) and any number of
// orders.
type Customer struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateCustomerParams holds the fields required to register a customer.
type CreateCustomerParams struct {
	Email        string
	Name         string
	PasswordHash string
}

// CustomerStore persists customers. CreateCustomer also creates the
// customer's cart in the same atomic scope, so cart existence is guaranteed
// for every customer.
type CustomerStore interface {
	CreateCustomer(ctx context.Context, params CreateCustomerParams) (*Customer, error)
	CustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	CustomerByEmail(ctx context.Context, email string) (*Customer, error)
}

// CustomerService registers customers. Authentication and session issuance
// live in an outer layer.
type CustomerService interface {
	Register(ctx context.Context, email, name, password string) (*Customer, error)
}
