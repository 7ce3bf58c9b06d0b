package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jmcrae/attire/internal/domain"
	"github.com/jmcrae/attire/internal/telemetry"
)

type cartService struct {
	carts    domain.CartStore
	products domain.ProductStore
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

// NewCartService creates the cart service.
func NewCartService(
	carts domain.CartStore,
	products domain.ProductStore,
	metrics *telemetry.BusinessMetrics,
	logger *slog.Logger,
) domain.CartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &cartService{
		carts:    carts,
		products: products,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *cartService) Details(ctx context.Context, customerID uuid.UUID) (*domain.CartDetail, error) {
	cart, err := s.carts.CartByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	products, err := s.carts.CartProducts(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	return &domain.CartDetail{CartID: cart.ID, Products: products}, nil
}

func (s *cartService) AddProduct(ctx context.Context, customerID, productID uuid.UUID) error {
	product, err := s.products.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.ErrInvalidProduct
		}
		return err
	}
	if !product.Active {
		return domain.ErrProductInactive
	}

	cart, err := s.carts.CartByCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	if err := s.carts.AddProduct(ctx, cart.ID, productID); err != nil {
		return err
	}

	s.metrics.CartItemsAdded.Inc()
	return nil
}

// RemoveProduct resolves only the cart and its membership set; the product's
// active flag is irrelevant, so archived products can still be removed.
func (s *cartService) RemoveProduct(ctx context.Context, customerID, productID uuid.UUID) error {
	cart, err := s.carts.CartByCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	if err := s.carts.RemoveProduct(ctx, cart.ID, productID); err != nil {
		return err
	}

	s.metrics.CartItemsRemoved.Inc()
	return nil
}
