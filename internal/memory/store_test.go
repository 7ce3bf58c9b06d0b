package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcrae/attire/internal/domain"
)

func seedProduct(t *testing.T, s *Store) *domain.Product {
	t.Helper()
	product, err := s.CreateProduct(context.Background(), domain.CreateProductParams{
		Brand:      "Akubra",
		Name:       "Felt Hat",
		Category:   domain.CategoryCasual,
		Gender:     domain.GenderUnisex,
		PriceCents: 15000,
	})
	require.NoError(t, err)
	return product
}

func seedCustomer(t *testing.T, s *Store, email string) *domain.Customer {
	t.Helper()
	customer, err := s.CreateCustomer(context.Background(), domain.CreateCustomerParams{
		Email:        email,
		Name:         "Test",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return customer
}

func TestStore_MarkUnitSoldTwice(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	product := seedProduct(t, s)
	units, err := s.AddUnits(ctx, product.ID, domain.SizeS, 1)
	require.NoError(t, err)

	require.NoError(t, s.MarkUnitSold(ctx, units[0].ID))

	err = s.MarkUnitSold(ctx, units[0].ID)
	require.ErrorIs(t, err, domain.ErrUnitAlreadySold)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestStore_AvailableUnitsInSeqOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	product := seedProduct(t, s)
	_, err := s.AddUnits(ctx, product.ID, domain.SizeM, 3)
	require.NoError(t, err)

	units, err := s.AvailableUnits(ctx, product.ID, domain.SizeM)
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Less(t, units[0].Seq, units[1].Seq)
	assert.Less(t, units[1].Seq, units[2].Seq)
}

func TestStore_CreateOrderIsAtomic(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	customer := seedCustomer(t, s, "alice@example.com")
	product := seedProduct(t, s)
	units, err := s.AddUnits(ctx, product.ID, domain.SizeS, 2)
	require.NoError(t, err)

	// Pre-sell one of the units the order references.
	require.NoError(t, s.MarkUnitSold(ctx, units[1].ID))

	_, err = s.CreateOrder(ctx, domain.CreateOrderParams{
		CustomerID:      customer.ID,
		ShippingAddress: domain.Address{State: domain.NSW},
		Lines: []domain.AllocatedLine{
			{ProductID: product.ID, Size: domain.SizeS, UnitIDs: []uuid.UUID{units[0].ID, units[1].ID}},
		},
	})
	require.ErrorIs(t, err, domain.ErrUnitAlreadySold)

	// The healthy unit was not consumed and no order was persisted.
	available, err := s.AvailableUnits(ctx, product.ID, domain.SizeS)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, units[0].ID, available[0].ID)

	orders, err := s.OrdersByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestStore_CartMembershipPrimitives(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	customer := seedCustomer(t, s, "alice@example.com")
	product := seedProduct(t, s)

	cart, err := s.CartByCustomer(ctx, customer.ID)
	require.NoError(t, err)

	require.NoError(t, s.AddProduct(ctx, cart.ID, product.ID))
	require.ErrorIs(t, s.AddProduct(ctx, cart.ID, product.ID), domain.ErrProductInCart)

	require.NoError(t, s.RemoveProduct(ctx, cart.ID, product.ID))
	require.ErrorIs(t, s.RemoveProduct(ctx, cart.ID, product.ID), domain.ErrProductNotInCart)
}

func TestStore_CreateCustomerDuplicateEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	seedCustomer(t, s, "alice@example.com")

	_, err := s.CreateCustomer(ctx, domain.CreateCustomerParams{
		Email:        "Alice@Example.com",
		Name:         "Clone",
		PasswordHash: "x",
	})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestStore_StockBySize(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	product := seedProduct(t, s)
	units, err := s.AddUnits(ctx, product.ID, domain.SizeS, 2)
	require.NoError(t, err)
	_, err = s.AddUnits(ctx, product.ID, domain.SizeL, 1)
	require.NoError(t, err)

	require.NoError(t, s.MarkUnitSold(ctx, units[0].ID))

	stock, err := s.StockBySize(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stock[domain.SizeS])
	assert.Equal(t, 1, stock[domain.SizeL])
	assert.Zero(t, stock[domain.SizeXS])
}
