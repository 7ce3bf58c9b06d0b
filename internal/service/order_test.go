package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcrae/attire/internal/domain"
)

func TestCreateOrder_AllocatesRequestedUnits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 8900)
	f.stock(t, product.ID, domain.SizeS, 2)

	summary, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeS, Quantity: 2}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, int64(2*8900), summary.TotalCents)

	// Both units are now sold.
	available, err := f.store.AvailableUnits(ctx, product.ID, domain.SizeS)
	require.NoError(t, err)
	assert.Empty(t, available)

	// One line item per physical unit, each bound to a distinct unit.
	order, err := f.store.OrderByID(ctx, summary.ID)
	require.NoError(t, err)
	require.Len(t, order.Lines, 2)
	assert.NotEqual(t, order.Lines[0].UnitID, order.Lines[1].UnitID)
	for _, line := range order.Lines {
		assert.Equal(t, product.ID, line.ProductID)
		assert.Equal(t, domain.SizeS, line.Size)
	}
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 8900)
	f.stock(t, product.ID, domain.SizeS, 1)

	_, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeS, Quantity: 2}},
		ShippingAddress: testAddress(),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	// The lone unit was not touched.
	available, err := f.store.AvailableUnits(ctx, product.ID, domain.SizeS)
	require.NoError(t, err)
	assert.Len(t, available, 1)
}

func TestCreateOrder_InactiveProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 8900)
	f.stock(t, product.ID, domain.SizeM, 3)
	require.NoError(t, f.store.SetProductActive(ctx, product.ID, false))

	_, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeM, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.ErrorIs(t, err, domain.ErrProductInactive)
	assert.Equal(t, domain.EPRECONDITION, domain.ErrorCode(err))

	available, err := f.store.AvailableUnits(ctx, product.ID, domain.SizeM)
	require.NoError(t, err)
	assert.Len(t, available, 3)
}

func TestCreateOrder_InvalidReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 8900)
	f.stock(t, product.ID, domain.SizeS, 1)
	item := domain.OrderItemInput{ProductID: product.ID, Size: domain.SizeS, Quantity: 1}

	t.Run("unknown customer", func(t *testing.T) {
		_, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
			CustomerID:      uuid.New(),
			Items:           []domain.OrderItemInput{item},
			ShippingAddress: testAddress(),
		})
		require.ErrorIs(t, err, domain.ErrInvalidCustomer)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
			CustomerID:      customer.ID,
			Items:           []domain.OrderItemInput{{ProductID: uuid.New(), Size: domain.SizeS, Quantity: 1}},
			ShippingAddress: testAddress(),
		})
		require.ErrorIs(t, err, domain.ErrInvalidProduct)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("empty order", func(t *testing.T) {
		_, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
			CustomerID:      customer.ID,
			ShippingAddress: testAddress(),
		})
		require.ErrorIs(t, err, domain.ErrEmptyOrder)
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
			CustomerID:      customer.ID,
			Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeS, Quantity: 0}},
			ShippingAddress: testAddress(),
		})
		require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("unknown size", func(t *testing.T) {
		_, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
			CustomerID:      customer.ID,
			Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: "XXXL", Quantity: 1}},
			ShippingAddress: testAddress(),
		})
		require.ErrorIs(t, err, domain.ErrInvalidSize)
	})

	// Nothing above may have consumed the unit.
	available, err := f.store.AvailableUnits(ctx, product.ID, domain.SizeS)
	require.NoError(t, err)
	assert.Len(t, available, 1)
}

func TestCreateOrder_AtomicAcrossLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	stocked := f.newProduct(t, 5000)
	f.stock(t, stocked.ID, domain.SizeS, 2)
	empty := f.newProduct(t, 7000)

	_, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID: customer.ID,
		Items: []domain.OrderItemInput{
			{ProductID: stocked.ID, Size: domain.SizeS, Quantity: 2},
			{ProductID: empty.ID, Size: domain.SizeM, Quantity: 1},
		},
		ShippingAddress: testAddress(),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// The satisfiable line must not have been allocated.
	available, err := f.store.AvailableUnits(ctx, stocked.ID, domain.SizeS)
	require.NoError(t, err)
	assert.Len(t, available, 2)

	orders, err := f.store.OrdersByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrder_DuplicateLinesTakeDistinctUnits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 5000)
	f.stock(t, product.ID, domain.SizeL, 2)

	summary, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID: customer.ID,
		Items: []domain.OrderItemInput{
			{ProductID: product.ID, Size: domain.SizeL, Quantity: 1},
			{ProductID: product.ID, Size: domain.SizeL, Quantity: 1},
		},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ItemCount)

	order, err := f.store.OrderByID(ctx, summary.ID)
	require.NoError(t, err)
	require.Len(t, order.Lines, 2)
	assert.NotEqual(t, order.Lines[0].UnitID, order.Lines[1].UnitID)
}

func TestCreateOrder_DeterministicSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 5000)
	f.stock(t, product.ID, domain.SizeS, 3)

	units, err := f.store.AvailableUnits(ctx, product.ID, domain.SizeS)
	require.NoError(t, err)
	require.Len(t, units, 3)

	summary, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeS, Quantity: 2}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	// The two oldest units (lowest Seq) are taken first.
	order, err := f.store.OrderByID(ctx, summary.ID)
	require.NoError(t, err)
	got := []uuid.UUID{order.Lines[0].UnitID, order.Lines[1].UnitID}
	assert.ElementsMatch(t, []uuid.UUID{units[0].ID, units[1].ID}, got)

	remaining, err := f.store.AvailableUnits(ctx, product.ID, domain.SizeS)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, units[2].ID, remaining[0].ID)
}

func TestCreateOrder_ConcurrentSingleUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 5000)
	f.stock(t, product.ID, domain.SizeS, 1)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
				CustomerID:      customer.ID,
				Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeS, Quantity: 1}},
				ShippingAddress: testAddress(),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientStock):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	available, err := f.store.AvailableUnits(ctx, product.ID, domain.SizeS)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestCreateOrder_ConcurrentOversubscribed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 5000)

	const goroutines = 8
	f.stock(t, product.ID, domain.SizeM, goroutines-1)

	var wg sync.WaitGroup
	results := make(chan error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
				CustomerID:      customer.ID,
				Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeM, Quantity: 1}},
				ShippingAddress: testAddress(),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientStock):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, goroutines-1, succeeded)
	assert.Equal(t, 1, conflicted)

	// Conservation: every unit is bound to exactly one order line.
	orders, err := f.store.OrdersByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	seen := make(map[uuid.UUID]bool)
	for _, order := range orders {
		for _, line := range order.Lines {
			assert.False(t, seen[line.UnitID], "unit allocated twice")
			seen[line.UnitID] = true
		}
	}
	assert.Len(t, seen, goroutines-1)
}

func TestCreateOrder_PublishesEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 12500)
	f.stock(t, product.ID, domain.SizeS, 1)

	summary, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeS, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	published := f.publisher.Published()
	require.Len(t, published, 1)
	assert.Equal(t, summary.ID, published[0].OrderID)
	assert.Equal(t, customer.ID, published[0].CustomerID)
	assert.Equal(t, int64(12500), published[0].TotalCents)
}

func TestOrder_Detail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 8900)
	f.stock(t, product.ID, domain.SizeS, 2)

	summary, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeS, Quantity: 2}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	detail, err := f.orders.Order(ctx, summary.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, detail.CustomerID)
	assert.Equal(t, int64(2*8900), detail.TotalCents)
	assert.False(t, detail.Cancelled)
	require.Len(t, detail.Lines, 2)
	assert.Equal(t, product.Brand, detail.Lines[0].Brand)
	assert.Equal(t, product.Name, detail.Lines[0].Name)
	assert.Equal(t, int64(8900), detail.Lines[0].PriceCents)
}

func TestOrder_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.Order(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestCustomerOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.newCustomer(t, "alice@example.com")
	product := f.newProduct(t, 4000)
	f.stock(t, product.ID, domain.SizeS, 3)

	first, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeS, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	second, err := f.orders.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID:      customer.ID,
		Items:           []domain.OrderItemInput{{ProductID: product.ID, Size: domain.SizeS, Quantity: 2}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	summaries, err := f.orders.CustomerOrders(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, first.ID, summaries[0].ID)
	assert.Equal(t, second.ID, summaries[1].ID)
	assert.Equal(t, int64(4000), summaries[0].TotalCents)
	assert.Equal(t, int64(8000), summaries[1].TotalCents)
}

func TestCustomerOrders_Empty(t *testing.T) {
	f := newFixture(t)
	customer := f.newCustomer(t, "bob@example.com")

	summaries, err := f.orders.CustomerOrders(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestCustomerOrders_UnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.orders.CustomerOrders(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrInvalidCustomer)
}
