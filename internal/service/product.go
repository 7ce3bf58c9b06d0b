package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jmcrae/attire/internal/domain"
)

// ProductService serves both the storefront catalog and internal product
// management. It implements domain.CatalogService and
// domain.ProductAdminService.
type ProductService struct {
	products  domain.ProductStore
	inventory domain.InventoryStore
	logger    *slog.Logger
}

var (
	_ domain.CatalogService      = (*ProductService)(nil)
	_ domain.ProductAdminService = (*ProductService)(nil)
)

// NewProductService creates the product service.
func NewProductService(
	products domain.ProductStore,
	inventory domain.InventoryStore,
	logger *slog.Logger,
) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		products:  products,
		inventory: inventory,
		logger:    logger,
	}
}

func (s *ProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	const op = "product.list"

	if filter.Gender != "" && !filter.Gender.Valid() {
		return nil, domain.Invalid(op, "Invalid gender filter")
	}
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, domain.Invalid(op, "Invalid category filter")
	}

	return s.products.ListActiveProducts(ctx, filter)
}

func (s *ProductService) ProductDetail(ctx context.Context, id uuid.UUID) (*domain.ProductDetail, error) {
	product, err := s.products.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stock, err := s.inventory.StockBySize(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.ProductDetail{Product: *product, Stock: stock}, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, params domain.CreateProductParams, inventory []domain.InventoryBatch) (*domain.Product, error) {
	const op = "product.create"

	params.Brand = strings.TrimSpace(params.Brand)
	params.Name = strings.TrimSpace(params.Name)
	params.Description = strings.TrimSpace(params.Description)

	if params.Brand == "" {
		return nil, domain.Invalid(op, "Brand is required")
	}
	if params.Name == "" {
		return nil, domain.Invalid(op, "Name is required")
	}
	if !params.Category.Valid() {
		return nil, domain.Invalid(op, "Invalid category")
	}
	if !params.Gender.Valid() {
		return nil, domain.Invalid(op, "Invalid gender")
	}
	if params.PriceCents <= 0 {
		return nil, domain.Invalid(op, "Price must be greater than 0")
	}
	if err := validateBatches(inventory); err != nil {
		return nil, err
	}

	product, err := s.products.CreateProduct(ctx, params)
	if err != nil {
		return nil, err
	}

	for _, batch := range inventory {
		if _, err := s.inventory.AddUnits(ctx, product.ID, batch.Size, batch.Count); err != nil {
			return nil, err
		}
	}

	s.logger.Info("product created",
		"product_id", product.ID,
		"brand", product.Brand,
		"name", product.Name,
	)

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) error {
	product, err := s.products.ProductByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.Active {
		return domain.ErrProductInactive
	}

	// Trim and drop no-op updates so the store only sees real changes.
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" || name == product.Name {
			params.Name = nil
		} else {
			params.Name = &name
		}
	}
	if params.Description != nil {
		description := strings.TrimSpace(*params.Description)
		if description == "" || description == product.Description {
			params.Description = nil
		} else {
			params.Description = &description
		}
	}
	if params.Name == nil && params.Description == nil {
		return nil
	}

	return s.products.UpdateProduct(ctx, id, params)
}

func (s *ProductService) ArchiveProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.ProductByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.Active {
		return domain.ErrProductArchived
	}

	if err := s.products.SetProductActive(ctx, id, false); err != nil {
		return err
	}

	s.logger.Info("product archived", "product_id", id)
	return nil
}

func (s *ProductService) UnarchiveProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.ProductByID(ctx, id)
	if err != nil {
		return err
	}
	if product.Active {
		return domain.ErrProductActive
	}

	if err := s.products.SetProductActive(ctx, id, true); err != nil {
		return err
	}

	s.logger.Info("product unarchived", "product_id", id)
	return nil
}

func (s *ProductService) AddInventory(ctx context.Context, id uuid.UUID, inventory []domain.InventoryBatch) error {
	const op = "product.restock"

	product, err := s.products.ProductByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.Active {
		return domain.ErrProductInactive
	}
	if len(inventory) == 0 {
		return domain.Invalid(op, "At least one inventory batch is required")
	}
	if err := validateBatches(inventory); err != nil {
		return err
	}

	for _, batch := range inventory {
		if _, err := s.inventory.AddUnits(ctx, id, batch.Size, batch.Count); err != nil {
			return err
		}
	}

	s.logger.Info("inventory added", "product_id", id, "batches", len(inventory))
	return nil
}

func validateBatches(batches []domain.InventoryBatch) error {
	for _, batch := range batches {
		if !batch.Size.Valid() {
			return domain.ErrInvalidSize
		}
		if batch.Count <= 0 {
			return domain.ErrInvalidStock
		}
	}
	return nil
}
