package transport

import (
	"fmt"
	"net/http"
	"time"

	"crimson-pos/internal/domain"
	"crimson-pos/internal/middleware"
	"crimson-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PlaceOrderRequest is the body of POST /api/transactions
type PlaceOrderRequest struct {
	CustomerID int64              `json:"customerId" validate:"required,gt=0"`
	EmployeeID int64              `json:"employeeId" validate:"required,gt=0"`
	Lines      []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type OrderLineRequest struct {
	ProductID int64           `json:"productId" validate:"required,gt=0"`
	Qty       int             `json:"qty" validate:"gte=1,lte=2147483647"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gte=0,lte=99999999.99"`
}

// OrderHandler handles HTTP requests for sales
type OrderHandler struct {
	orders service.OrderService
	logger *zap.Logger
}

func NewOrderHandler(orders service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// RegisterRoutes registers order placement and order history routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/transactions", h.PlaceOrder)
	r.Get("/api/orders", h.ListOrders)
	r.Get("/api/orders/{id}", h.GetOrder)
}

// PlaceOrder records a sale atomically and returns its id and totals
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if !bindJSON(w, r, &req, h.logger) {
		return
	}

	lines := make([]domain.OrderLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.OrderLine{
			ProductID: l.ProductID,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
		}
	}

	placed, err := h.orders.PlaceOrder(r.Context(), service.PlaceOrderInput{
		CustomerID: req.CustomerID,
		EmployeeID: req.EmployeeID,
		Lines:      lines,
	})
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}

	h.logger.Info("Order placed",
		zap.Int64("transaction_id", placed.TransactionID),
		zap.Int("lines", len(lines)),
		zap.String("total", placed.Total.StringFixed(2)),
	)

	w.Header().Set("Location", fmt.Sprintf("/api/orders/%d", placed.TransactionID))
	middleware.RespondWithJSON(w, http.StatusCreated, placed)
}

var orderColumns = []csvColumn[domain.OrderSummary]{
	{"Id", func(o domain.OrderSummary) string { return itoa(o.TransactionID) }},
	{"Date", func(o domain.OrderSummary) string { return o.TransactionDate.UTC().Format(time.RFC3339) }},
	{"Customer", func(o domain.OrderSummary) string { return joinName(o.FirstName, o.LastName) }},
	{"Employee", func(o domain.OrderSummary) string { return joinName(o.EmpFirstName, o.EmpLastName) }},
	{"Subtotal", func(o domain.OrderSummary) string { return money(o.Subtotal) }},
	{"Tax", func(o domain.OrderSummary) string { return money(o.Tax) }},
	{"Total", func(o domain.OrderSummary) string { return money(o.Total) }},
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListRecentOrders(r.Context())
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}

	respondRows(w, r, "orders.csv", orders, orderColumns, h.logger)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}
