package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jmcrae/attire/internal/domain"
)

// CustomerHandler serves customer registration.
type CustomerHandler struct {
	customers domain.CustomerService
	logger    *slog.Logger
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(customers domain.CustomerService, logger *slog.Logger) *CustomerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerHandler{customers: customers, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type customerResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Register handles POST /api/customers/register.
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	customer, err := h.customers.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, customerResponse{
		ID:        customer.ID,
		Email:     customer.Email,
		Name:      customer.Name,
		CreatedAt: customer.CreatedAt,
	})
}
