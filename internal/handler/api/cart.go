package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jmcrae/attire/internal/domain"
)

// CartHandler serves cart endpoints.
type CartHandler struct {
	carts  domain.CartService
	logger *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(carts domain.CartService, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{carts: carts, logger: logger}
}

type cartResponse struct {
	CartID   uuid.UUID         `json:"cart_id"`
	Products []productResponse `json:"products"`
}

// Get handles GET /api/cart/{customerId}.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathUUID(r, "customerId")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	detail, err := h.carts.Details(r.Context(), customerID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response := cartResponse{
		CartID:   detail.CartID,
		Products: make([]productResponse, 0, len(detail.Products)),
	}
	for _, p := range detail.Products {
		response.Products = append(response.Products, toProductResponse(p))
	}

	respondJSON(w, http.StatusOK, response)
}

type cartItemRequest struct {
	CustomerID uuid.UUID `json:"customer_id" validate:"required"`
	ProductID  uuid.UUID `json:"product_id" validate:"required"`
}

// Add handles POST /api/cart/add.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.carts.AddProduct(r.Context(), req.CustomerID, req.ProductID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Remove handles POST /api/cart/remove.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.carts.RemoveProduct(r.Context(), req.CustomerID, req.ProductID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
