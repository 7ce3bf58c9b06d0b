package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jmcrae/attire/internal/domain"
	"github.com/jmcrae/attire/internal/events"
	"github.com/jmcrae/attire/internal/memory"
	"github.com/jmcrae/attire/internal/telemetry"
)

// fixture wires every service against a shared in-memory store.
type fixture struct {
	store     *memory.Store
	orders    domain.OrderService
	carts     domain.CartService
	products  *ProductService
	customers domain.CustomerService
	publisher *events.NoopPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := telemetry.NewBusinessMetrics(prometheus.NewRegistry())
	publisher := events.NewNoopPublisher()

	return &fixture{
		store:     store,
		orders:    NewOrderService(store, store, store, store, publisher, metrics, logger),
		carts:     NewCartService(store, store, metrics, logger),
		products:  NewProductService(store, store, logger),
		customers: NewCustomerService(store, metrics, logger),
		publisher: publisher,
	}
}

func (f *fixture) newCustomer(t *testing.T, email string) *domain.Customer {
	t.Helper()
	customer, err := f.customers.Register(context.Background(), email, "Test Customer", "correct horse")
	require.NoError(t, err)
	return customer
}

func (f *fixture) newProduct(t *testing.T, priceCents int64) *domain.Product {
	t.Helper()
	product, err := f.store.CreateProduct(context.Background(), domain.CreateProductParams{
		Brand:       "Driza-Bone",
		Name:        "Oilskin Jacket",
		Description: "Waxed cotton",
		Category:    domain.CategoryCasual,
		Gender:      domain.GenderUnisex,
		PriceCents:  priceCents,
	})
	require.NoError(t, err)
	return product
}

func (f *fixture) stock(t *testing.T, productID uuid.UUID, size domain.Size, count int) {
	t.Helper()
	_, err := f.store.AddUnits(context.Background(), productID, size, count)
	require.NoError(t, err)
}

func testAddress() domain.Address {
	return domain.Address{
		StreetAddress: "12 Flinders Lane",
		Suburb:        "Melbourne",
		State:         domain.VIC,
		Postcode:      3000,
		Country:       "Australia",
	}
}
