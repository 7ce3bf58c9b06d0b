package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product domain errors.
var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrInvalidProduct  = &Error{Code: EINVALID, Message: "Invalid product ID"}
	ErrProductInactive = &Error{Code: EPRECONDITION, Message: "Product is inactive"}
	ErrProductArchived = &Error{Code: ECONFLICT, Message: "Product is already archived"}
	ErrProductActive   = &Error{Code: ECONFLICT, Message: "Product is already active"}
)

// Category classifies a product within the catalog.
type Category string

const (
	CategorySportswear Category = "sportswear"
	CategoryCasual     Category = "casual"
	CategoryFormal     Category = "formal"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategorySportswear, CategoryCasual, CategoryFormal:
		return true
	}
	return false
}

// Gender is the gender a product is designed for.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return true
	}
	return false
}

// Product is a catalog entry. Archived products (Active=false) keep their
// history but are excluded from new cart additions and allocations.
type Product struct {
	ID          uuid.UUID
	SKU         uuid.UUID
	Brand       string
	Name        string
	Description string
	Category    Category
	Gender      Gender
	PriceCents  int64
	Active      bool
	CreatedAt   time.Time
}

// CreateProductParams holds the fields required to create a product.
type CreateProductParams struct {
	Brand       string
	Name        string
	Description string
	Category    Category
	Gender      Gender
	PriceCents  int64
}

// UpdateProductParams holds optional product updates. Nil fields are left
// unchanged.
type UpdateProductParams struct {
	Name        *string
	Description *string
}

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Gender   Gender
	Category Category
}

// ProductDetail is a product with its per-size available stock.
type ProductDetail struct {
	Product Product
	Stock   map[Size]int
}

// ProductStore persists products.
type ProductStore interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*Product, error)
	ListActiveProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) error
	SetProductActive(ctx context.Context, id uuid.UUID, active bool) error
}

// CatalogService serves storefront product browsing.
type CatalogService interface {
	// ListProducts returns active products matching the filter.
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)

	// ProductDetail returns a product with per-size available stock.
	// Fails with ENOTFOUND if the product does not exist.
	ProductDetail(ctx context.Context, id uuid.UUID) (*ProductDetail, error)
}

// ProductAdminService manages the catalog lifecycle.
type ProductAdminService interface {
	// CreateProduct creates a product with its initial inventory batches.
	CreateProduct(ctx context.Context, params CreateProductParams, inventory []InventoryBatch) (*Product, error)

	// UpdateProduct updates name/description of an active product.
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) error

	// ArchiveProduct blocks a product from new cart additions and allocations.
	// Fails with ECONFLICT if already archived.
	ArchiveProduct(ctx context.Context, id uuid.UUID) error

	// UnarchiveProduct re-activates an archived product.
	// Fails with ECONFLICT if already active.
	UnarchiveProduct(ctx context.Context, id uuid.UUID) error

	// AddInventory creates new unsold units for an active product.
	AddInventory(ctx context.Context, id uuid.UUID, inventory []InventoryBatch) error
}
