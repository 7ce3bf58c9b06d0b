package domain

import (
	"context"

	"github.com/google/uuid"
)

// Inventory domain errors.
var (
	// ErrUnitAlreadySold indicates a unit was claimed twice. This is an
	// internal invariant violation, not a user error: under correct locking
	// it must never happen.
	ErrUnitAlreadySold = &Error{Code: EINTERNAL, Message: "Inventory unit already sold"}

	ErrInvalidSize  = &Error{Code: EINVALID, Message: "Invalid product size"}
	ErrInvalidStock = &Error{Code: EINVALID, Message: "Stock count must be greater than 0"}
)

// Size is a garment size.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes lists all sizes in ascending order.
var Sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// Valid reports whether s is a known size.
func (s Size) Valid() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}

// InventoryUnit is one physical, individually trackable item of a product in
// a given size. A unit, once sold, never reverts to unsold here; returns are
// out of scope.
type InventoryUnit struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Size      Size
	Sold      bool

	// Seq is a monotonically increasing creation sequence. Available units
	// are returned in Seq order so allocation is deterministic.
	Seq int64
}

// InventoryBatch describes a count of identical units to stock.
type InventoryBatch struct {
	Size  Size
	Count int
}

// InventoryStore persists inventory units.
type InventoryStore interface {
	// AddUnits creates count new unsold units for (productID, size).
	AddUnits(ctx context.Context, productID uuid.UUID, size Size, count int) ([]InventoryUnit, error)

	// AvailableUnits returns all unsold units for (productID, size) in Seq
	// order.
	AvailableUnits(ctx context.Context, productID uuid.UUID, size Size) ([]InventoryUnit, error)

	// StockBySize returns the count of unsold units per size for a product.
	StockBySize(ctx context.Context, productID uuid.UUID) (map[Size]int, error)

	// MarkUnitSold transitions a unit from unsold to sold. Fails with
	// ErrUnitAlreadySold if the unit is already sold.
	MarkUnitSold(ctx context.Context, unitID uuid.UUID) error
}
