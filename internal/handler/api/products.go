package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jmcrae/attire/internal/domain"
)

// ProductHandler serves the storefront catalog endpoints.
type ProductHandler struct {
	catalog domain.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a catalog handler.
func NewProductHandler(catalog domain.CatalogService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{catalog: catalog, logger: logger}
}

type productResponse struct {
	ID          uuid.UUID       `json:"id"`
	SKU         uuid.UUID       `json:"sku"`
	Brand       string          `json:"brand"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category"`
	Gender      domain.Gender   `json:"gender"`
	PriceCents  int64           `json:"price_cents"`
	Active      bool            `json:"active"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Brand:       p.Brand,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Gender:      p.Gender,
		PriceCents:  p.PriceCents,
		Active:      p.Active,
	}
}

// List handles GET /api/products with optional gender and category filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProductFilter{
		Gender:   domain.Gender(r.URL.Query().Get("gender")),
		Category: domain.Category(r.URL.Query().Get("category")),
	}

	products, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response := make([]productResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}

	respondJSON(w, http.StatusOK, response)
}

type productDetailResponse struct {
	productResponse
	Stock map[domain.Size]int `json:"stock"`
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	detail, err := h.catalog.ProductDetail(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, productDetailResponse{
		productResponse: toProductResponse(detail.Product),
		Stock:           detail.Stock,
	})
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.EINVALID, "", "Invalid %s", name)
	}
	return id, nil
}
