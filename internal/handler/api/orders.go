package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jmcrae/attire/internal/domain"
)

// OrderHandler serves order endpoints.
type OrderHandler struct {
	orders domain.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(orders domain.OrderService, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{orders: orders, logger: logger}
}

type addressRequest struct {
	StreetAddress string `json:"street_address" validate:"required"`
	Suburb        string `json:"suburb" validate:"required"`
	State         string `json:"state" validate:"required"`
	Postcode      int    `json:"postcode" validate:"required,gte=200,lte=9999"`
	Country       string `json:"country" validate:"required"`
}

func (a addressRequest) toDomain() domain.Address {
	return domain.Address{
		StreetAddress: a.StreetAddress,
		Suburb:        a.Suburb,
		State:         domain.AuState(a.State),
		Postcode:      a.Postcode,
		Country:       a.Country,
	}
}

type orderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Size      string    `json:"size" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	CustomerID      uuid.UUID          `json:"customer_id" validate:"required"`
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress addressRequest     `json:"shipping_address" validate:"required"`
}

type orderSummaryResponse struct {
	ID              uuid.UUID      `json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	ShippingAddress domain.Address `json:"shipping_address"`
	ItemCount       int            `json:"item_count"`
	TotalCents      int64          `json:"total_cents"`
}

func toSummaryResponse(s domain.OrderSummary) orderSummaryResponse {
	return orderSummaryResponse{
		ID:              s.ID,
		CreatedAt:       s.CreatedAt,
		ShippingAddress: s.ShippingAddress,
		ItemCount:       s.ItemCount,
		TotalCents:      s.TotalCents,
	}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	items := make([]domain.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItemInput{
			ProductID: item.ProductID,
			Size:      domain.Size(item.Size),
			Quantity:  item.Quantity,
		})
	}

	summary, err := h.orders.CreateOrder(r.Context(), domain.CreateOrderInput{
		CustomerID:      req.CustomerID,
		Items:           items,
		ShippingAddress: req.ShippingAddress.toDomain(),
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, toSummaryResponse(*summary))
}

type orderLineResponse struct {
	ID         uuid.UUID   `json:"id"`
	ProductID  uuid.UUID   `json:"product_id"`
	Brand      string      `json:"brand"`
	Name       string      `json:"name"`
	Size       domain.Size `json:"size"`
	PriceCents int64       `json:"price_cents"`
	Returned   bool        `json:"returned"`
}

type orderDetailResponse struct {
	ID              uuid.UUID           `json:"id"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	CreatedAt       time.Time           `json:"created_at"`
	ShippingAddress domain.Address      `json:"shipping_address"`
	Cancelled       bool                `json:"cancelled"`
	TotalCents      int64               `json:"total_cents"`
	Lines           []orderLineResponse `json:"lines"`
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	detail, err := h.orders.Order(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response := orderDetailResponse{
		ID:              detail.ID,
		CustomerID:      detail.CustomerID,
		CreatedAt:       detail.CreatedAt,
		ShippingAddress: detail.ShippingAddress,
		Cancelled:       detail.Cancelled,
		TotalCents:      detail.TotalCents,
		Lines:           make([]orderLineResponse, 0, len(detail.Lines)),
	}
	for _, line := range detail.Lines {
		response.Lines = append(response.Lines, orderLineResponse{
			ID:         line.ID,
			ProductID:  line.ProductID,
			Brand:      line.Brand,
			Name:       line.Name,
			Size:       line.Size,
			PriceCents: line.PriceCents,
			Returned:   line.Returned,
		})
	}

	respondJSON(w, http.StatusOK, response)
}

// List handles GET /api/orders?customer={id}.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(r.URL.Query().Get("customer"))
	if err != nil {
		respondError(w, r, h.logger, domain.ErrInvalidCustomer)
		return
	}

	summaries, err := h.orders.CustomerOrders(r.Context(), customerID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	response := make([]orderSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, toSummaryResponse(s))
	}

	respondJSON(w, http.StatusOK, response)
}
