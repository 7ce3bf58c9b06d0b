package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcrae/attire/internal/auth"
	"github.com/jmcrae/attire/internal/domain"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer, err := f.customers.Register(ctx, " Alice@Example.COM ", "Alice", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", customer.Email)
	assert.Equal(t, "Alice", customer.Name)
	require.NoError(t, auth.VerifyPassword("hunter2hunter2", customer.PasswordHash))

	// The cart exists immediately.
	cart, err := f.store.CartByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, cart.CustomerID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.customers.Register(ctx, "alice@example.com", "Alice", "hunter2hunter2")
	require.NoError(t, err)

	// Email comparison is case-insensitive.
	_, err = f.customers.Register(ctx, "ALICE@example.com", "Other Alice", "hunter2hunter2")
	require.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.customers.Register(ctx, "", "Alice", "hunter2hunter2")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = f.customers.Register(ctx, "alice@example.com", "", "hunter2hunter2")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = f.customers.Register(ctx, "alice@example.com", "Alice", "short")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
