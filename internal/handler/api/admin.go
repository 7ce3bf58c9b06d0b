package api

import (
	"log/slog"
	"net/http"

	"github.com/jmcrae/attire/internal/domain"
)

// AdminProductHandler serves the internal product management endpoints.
type AdminProductHandler struct {
	products domain.ProductAdminService
	logger   *slog.Logger
}

// NewAdminProductHandler creates an internal product handler.
func NewAdminProductHandler(products domain.ProductAdminService, logger *slog.Logger) *AdminProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminProductHandler{products: products, logger: logger}
}

type inventoryBatchRequest struct {
	Size  string `json:"size" validate:"required"`
	Count int    `json:"count" validate:"required,gt=0"`
}

func toBatches(in []inventoryBatchRequest) []domain.InventoryBatch {
	batches := make([]domain.InventoryBatch, 0, len(in))
	for _, b := range in {
		batches = append(batches, domain.InventoryBatch{
			Size:  domain.Size(b.Size),
			Count: b.Count,
		})
	}
	return batches
}

type createProductRequest struct {
	Brand       string                  `json:"brand" validate:"required"`
	Name        string                  `json:"name" validate:"required"`
	Description string                  `json:"description"`
	Category    string                  `json:"category" validate:"required"`
	Gender      string                  `json:"gender" validate:"required"`
	PriceCents  int64                   `json:"price_cents" validate:"required,gt=0"`
	Inventory   []inventoryBatchRequest `json:"inventory" validate:"dive"`
}

// Create handles POST /api/internal/products.
func (h *AdminProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	product, err := h.products.CreateProduct(r.Context(), domain.CreateProductParams{
		Brand:       req.Brand,
		Name:        req.Name,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		Gender:      domain.Gender(req.Gender),
		PriceCents:  req.PriceCents,
	}, toBatches(req.Inventory))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProductResponse(*product))
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Update handles PATCH /api/internal/products/{id}.
func (h *AdminProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	err = h.products.UpdateProduct(r.Context(), id, domain.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Archive handles POST /api/internal/products/{id}/archive.
func (h *AdminProductHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.products.ArchiveProduct(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unarchive handles POST /api/internal/products/{id}/unarchive.
func (h *AdminProductHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.products.UnarchiveProduct(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addInventoryRequest struct {
	Inventory []inventoryBatchRequest `json:"inventory" validate:"required,min=1,dive"`
}

// AddInventory handles POST /api/internal/products/{id}/inventory.
func (h *AdminProductHandler) AddInventory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req addInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.products.AddInventory(r.Context(), id, toBatches(req.Inventory)); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
