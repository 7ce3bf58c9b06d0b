// Package memory provides an in-memory Store used by service tests and by
// local development without a database. All operations are guarded by a
// single mutex, so every store primitive is atomic.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmcrae/attire/internal/domain"
)

// Store implements every domain store interface over process memory.
type Store struct {
	mu sync.Mutex

	products  map[uuid.UUID]domain.Product
	units     map[uuid.UUID]domain.InventoryUnit
	customers map[uuid.UUID]domain.Customer
	carts     map[uuid.UUID]domain.Cart            // keyed by cart ID
	cartItems map[uuid.UUID]map[uuid.UUID]struct{} // cart ID -> product ID set
	orders    map[uuid.UUID]domain.Order

	unitSeq int64
}

var (
	_ domain.ProductStore   = (*Store)(nil)
	_ domain.InventoryStore = (*Store)(nil)
	_ domain.CartStore      = (*Store)(nil)
	_ domain.OrderStore     = (*Store)(nil)
	_ domain.CustomerStore  = (*Store)(nil)
)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		products:  make(map[uuid.UUID]domain.Product),
		units:     make(map[uuid.UUID]domain.InventoryUnit),
		customers: make(map[uuid.UUID]domain.Customer),
		carts:     make(map[uuid.UUID]domain.Cart),
		cartItems: make(map[uuid.UUID]map[uuid.UUID]struct{}),
		orders:    make(map[uuid.UUID]domain.Order),
	}
}

// =============================================================================
// PRODUCTS
// =============================================================================

func (s *Store) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Product{
		ID:          uuid.New(),
		SKU:         uuid.New(),
		Brand:       params.Brand,
		Name:        params.Name,
		Description: params.Description,
		Category:    params.Category,
		Gender:      params.Gender,
		PriceCents:  params.PriceCents,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	s.products[p.ID] = p
	return &p, nil
}

func (s *Store) ProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (s *Store) ListActiveProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Product
	for _, p := range s.products {
		if !p.Active {
			continue
		}
		if filter.Gender != "" && p.Gender != filter.Gender {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
	})
	return out, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	s.products[id] = p
	return nil
}

func (s *Store) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Active = active
	s.products[id] = p
	return nil
}

// =============================================================================
// INVENTORY
// =============================================================================

func (s *Store) AddUnits(ctx context.Context, productID uuid.UUID, size domain.Size, count int) ([]domain.InventoryUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return nil, domain.ErrProductNotFound
	}

	units := make([]domain.InventoryUnit, 0, count)
	for i := 0; i < count; i++ {
		s.unitSeq++
		u := domain.InventoryUnit{
			ID:        uuid.New(),
			ProductID: productID,
			Size:      size,
			Sold:      false,
			Seq:       s.unitSeq,
		}
		s.units[u.ID] = u
		units = append(units, u)
	}
	return units, nil
}

func (s *Store) AvailableUnits(ctx context.Context, productID uuid.UUID, size domain.Size) ([]domain.InventoryUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.availableUnitsLocked(productID, size), nil
}

func (s *Store) availableUnitsLocked(productID uuid.UUID, size domain.Size) []domain.InventoryUnit {
	var out []domain.InventoryUnit
	for _, u := range s.units {
		if u.ProductID == productID && u.Size == size && !u.Sold {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func (s *Store) StockBySize(ctx context.Context, productID uuid.UUID) (map[domain.Size]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stock := make(map[domain.Size]int)
	for _, u := range s.units {
		if u.ProductID == productID && !u.Sold {
			stock[u.Size]++
		}
	}
	return stock, nil
}

func (s *Store) MarkUnitSold(ctx context.Context, unitID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.markUnitSoldLocked(unitID)
}

func (s *Store) markUnitSoldLocked(unitID uuid.UUID) error {
	u, ok := s.units[unitID]
	if !ok {
		return domain.NotFound("inventory.mark_sold", "inventory unit", unitID.String())
	}
	if u.Sold {
		return domain.ErrUnitAlreadySold
	}
	u.Sold = true
	s.units[unitID] = u
	return nil
}

// =============================================================================
// CARTS
// =============================================================================

func (s *Store) CreateCart(ctx context.Context, customerID uuid.UUID) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createCartLocked(customerID)
}

func (s *Store) createCartLocked(customerID uuid.UUID) (*domain.Cart, error) {
	c := domain.Cart{ID: uuid.New(), CustomerID: customerID}
	s.carts[c.ID] = c
	s.cartItems[c.ID] = make(map[uuid.UUID]struct{})
	return &c, nil
}

func (s *Store) CartByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.carts {
		if c.CustomerID == customerID {
			cart := c
			return &cart, nil
		}
	}
	return nil, domain.ErrCartNotFound
}

func (s *Store) CartProducts(ctx context.Context, cartID uuid.UUID) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.cartItems[cartID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	out := make([]domain.Product, 0, len(items))
	for productID := range items {
		if p, ok := s.products[productID]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
	})
	return out, nil
}

func (s *Store) AddProduct(ctx context.Context, cartID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.cartItems[cartID]
	if !ok {
		return domain.ErrCartNotFound
	}
	if _, exists := items[productID]; exists {
		return domain.ErrProductInCart
	}
	items[productID] = struct{}{}
	return nil
}

func (s *Store) RemoveProduct(ctx context.Context, cartID, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.cartItems[cartID]
	if !ok {
		return domain.ErrCartNotFound
	}
	if _, exists := items[productID]; !exists {
		return domain.ErrProductNotInCart
	}
	delete(items, productID)
	return nil
}

// =============================================================================
// ORDERS
// =============================================================================

// CreateOrder claims every referenced unit and inserts the order under one
// lock. If any unit is missing or already sold, nothing is mutated.
func (s *Store) CreateOrder(ctx context.Context, params domain.CreateOrderParams) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate before mutating so failure leaves no partial state.
	for _, line := range params.Lines {
		for _, unitID := range line.UnitIDs {
			u, ok := s.units[unitID]
			if !ok {
				return nil, domain.NotFound("order.create", "inventory unit", unitID.String())
			}
			if u.Sold {
				return nil, domain.ErrUnitAlreadySold
			}
		}
	}

	order := domain.Order{
		ID:              uuid.New(),
		CustomerID:      params.CustomerID,
		CreatedAt:       params.CreatedAt,
		ShippingAddress: params.ShippingAddress,
		Cancelled:       false,
	}
	for _, line := range params.Lines {
		for _, unitID := range line.UnitIDs {
			if err := s.markUnitSoldLocked(unitID); err != nil {
				return nil, err
			}
			order.Lines = append(order.Lines, domain.OrderLineItem{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Size:      line.Size,
				UnitID:    unitID,
				Returned:  false,
			})
		}
	}
	s.orders[order.ID] = order
	return &order, nil
}

func (s *Store) OrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	order := o
	order.Lines = append([]domain.OrderLineItem(nil), o.Lines...)
	return &order, nil
}

func (s *Store) OrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, 0)
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			order := o
			order.Lines = append([]domain.OrderLineItem(nil), o.Lines...)
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
	})
	return out, nil
}

// =============================================================================
// CUSTOMERS
// =============================================================================

func (s *Store) CreateCustomer(ctx context.Context, params domain.CreateCustomerParams) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if strings.EqualFold(c.Email, params.Email) {
			return nil, domain.ErrEmailTaken
		}
	}

	c := domain.Customer{
		ID:           uuid.New(),
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.Now(),
	}
	s.customers[c.ID] = c
	if _, err := s.createCartLocked(c.ID); err != nil {
		delete(s.customers, c.ID)
		return nil, err
	}
	return &c, nil
}

func (s *Store) CustomerByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, domain.ErrInvalidCustomer
	}
	return &c, nil
}

func (s *Store) CustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if strings.EqualFold(c.Email, email) {
			customer := c
			return &customer, nil
		}
	}
	return nil, domain.ErrInvalidCustomer
}
