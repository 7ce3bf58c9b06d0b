package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jmcrae/attire/internal/domain"
	"github.com/jmcrae/attire/internal/events"
	"github.com/jmcrae/attire/internal/telemetry"
)

// orderService is the allocation engine. Order creation holds a mutex per
// requested (product, size) bucket from inventory read through order commit,
// so each physical unit can be selected by at most one concurrent request.
// The store's conditional unsold->sold transition backstops the locks: if it
// ever fires, an invariant is broken and the error surfaces as EINTERNAL.
type orderService struct {
	customers domain.CustomerStore
	products  domain.ProductStore
	inventory domain.InventoryStore
	orders    domain.OrderStore
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
	locks     *keyedLocks
}

// NewOrderService creates the order allocation and query service.
func NewOrderService(
	customers domain.CustomerStore,
	products domain.ProductStore,
	inventory domain.InventoryStore,
	orders domain.OrderStore,
	publisher events.Publisher,
	metrics *telemetry.BusinessMetrics,
	logger *slog.Logger,
) domain.OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &orderService{
		customers: customers,
		products:  products,
		inventory: inventory,
		orders:    orders,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		locks:     newKeyedLocks(),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, input domain.CreateOrderInput) (*domain.OrderSummary, error) {
	const op = "order.create"

	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if !item.Size.Valid() {
			return nil, domain.ErrInvalidSize
		}
	}
	if !input.ShippingAddress.State.Valid() {
		return nil, domain.Invalid(op, "Invalid shipping address state")
	}

	if _, err := s.customers.CustomerByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	keys := make([]allocKey, 0, len(input.Items))
	for _, item := range input.Items {
		keys = append(keys, allocKey{productID: item.ProductID, size: item.Size})
	}
	unlock := s.locks.lockAll(keys)
	defer unlock()

	// Select units line by line, in request order, without mutating anything.
	// claimed tracks units taken by earlier lines of this same request, so
	// duplicate (product, size) lines never select the same unit twice.
	var (
		lines      = make([]domain.AllocatedLine, 0, len(input.Items))
		claimed    = make(map[uuid.UUID]struct{})
		unitCount  int
		totalCents int64
	)
	for _, item := range input.Items {
		product, err := s.products.ProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, domain.ErrInvalidProduct
			}
			return nil, err
		}
		if !product.Active {
			return nil, domain.ErrProductInactive
		}

		units, err := s.inventory.AvailableUnits(ctx, item.ProductID, item.Size)
		if err != nil {
			return nil, err
		}

		unitIDs := make([]uuid.UUID, 0, item.Quantity)
		for _, unit := range units {
			if _, taken := claimed[unit.ID]; taken {
				continue
			}
			unitIDs = append(unitIDs, unit.ID)
			if len(unitIDs) == item.Quantity {
				break
			}
		}
		if len(unitIDs) < item.Quantity {
			s.metrics.AllocationFailures.WithLabelValues("insufficient_stock").Inc()
			return nil, domain.ErrInsufficientStock
		}
		for _, id := range unitIDs {
			claimed[id] = struct{}{}
		}

		lines = append(lines, domain.AllocatedLine{
			ProductID: item.ProductID,
			Size:      item.Size,
			UnitIDs:   unitIDs,
		})
		unitCount += item.Quantity
		totalCents += product.PriceCents * int64(item.Quantity)
	}

	order, err := s.orders.CreateOrder(ctx, domain.CreateOrderParams{
		CustomerID:      input.CustomerID,
		CreatedAt:       time.Now().UTC(),
		ShippingAddress: input.ShippingAddress,
		Lines:           lines,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnitAlreadySold) {
			s.metrics.AllocationFailures.WithLabelValues("unit_conflict").Inc()
			s.logger.Error("allocation invariant violated: selected unit was already sold",
				"op", op,
				"customer_id", input.CustomerID,
				"error", err,
			)
		}
		return nil, err
	}

	s.metrics.OrdersCreated.Inc()
	s.metrics.UnitsAllocated.Add(float64(unitCount))
	s.metrics.OrderValue.Observe(float64(totalCents))
	s.metrics.OrderItemCount.Observe(float64(unitCount))

	event := events.OrderCreated{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ItemCount:  unitCount,
		TotalCents: totalCents,
		CreatedAt:  order.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Warn("failed to publish order created event",
			"order_id", order.ID,
			"error", err,
		)
	}

	s.logger.Info("order created",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
		"units", unitCount,
		"total_cents", totalCents,
	)

	return &domain.OrderSummary{
		ID:              order.ID,
		CreatedAt:       order.CreatedAt,
		ShippingAddress: order.ShippingAddress,
		ItemCount:       unitCount,
		TotalCents:      totalCents,
	}, nil
}

func (s *orderService) Order(ctx context.Context, id uuid.UUID) (*domain.OrderDetail, error) {
	order, err := s.orders.OrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.OrderDetail{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		CreatedAt:       order.CreatedAt,
		ShippingAddress: order.ShippingAddress,
		Cancelled:       order.Cancelled,
		Lines:           make([]domain.OrderLineDetail, 0, len(order.Lines)),
	}

	cache := make(map[uuid.UUID]*domain.Product)
	for _, line := range order.Lines {
		product, err := s.productCached(ctx, cache, line.ProductID)
		if err != nil {
			return nil, err
		}
		detail.Lines = append(detail.Lines, domain.OrderLineDetail{
			ID:         line.ID,
			ProductID:  line.ProductID,
			Brand:      product.Brand,
			Name:       product.Name,
			Size:       line.Size,
			PriceCents: product.PriceCents,
			Returned:   line.Returned,
		})
		detail.TotalCents += product.PriceCents
	}

	return detail, nil
}

func (s *orderService) CustomerOrders(ctx context.Context, customerID uuid.UUID) ([]domain.OrderSummary, error) {
	if _, err := s.customers.CustomerByID(ctx, customerID); err != nil {
		return nil, err
	}

	orders, err := s.orders.OrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cache := make(map[uuid.UUID]*domain.Product)
	summaries := make([]domain.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summary := domain.OrderSummary{
			ID:              order.ID,
			CreatedAt:       order.CreatedAt,
			ShippingAddress: order.ShippingAddress,
			ItemCount:       len(order.Lines),
		}
		for _, line := range order.Lines {
			product, err := s.productCached(ctx, cache, line.ProductID)
			if err != nil {
				return nil, err
			}
			summary.TotalCents += product.PriceCents
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// productCached looks up a product through a per-call cache. Totals are
// derived from current prices at read time, so one price per product per
// request is enough.
func (s *orderService) productCached(ctx context.Context, cache map[uuid.UUID]*domain.Product, id uuid.UUID) (*domain.Product, error) {
	if product, ok := cache[id]; ok {
		return product, nil
	}
	product, err := s.products.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = product
	return product, nil
}
