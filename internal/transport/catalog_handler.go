package transport

import (
	"net/http"
	"strings"

	"crimson-pos/internal/domain"
	"crimson-pos/internal/middleware"
	"crimson-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdjustStockRequest is the body of POST /api/products/{id}/adjust-stock
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"gte=-2147483648,lte=2147483647"`
}

// CatalogHandler serves products, customers and employees, and stock adjustments
type CatalogHandler struct {
	catalog   service.CatalogService
	inventory service.InventoryService
	logger    *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, inventory service.InventoryService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:   catalog,
		inventory: inventory,
		logger:    logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", h.ListProducts)
	r.Post("/api/products/{id}/adjust-stock", h.AdjustStock)
	r.Get("/api/customers", h.ListCustomers)
	r.Get("/api/employees", h.ListEmployees)
}

var productColumns = []csvColumn[domain.Product]{
	{"Name", func(p domain.Product) string { return p.Name }},
	{"Category", func(p domain.Product) string { return p.Category }},
	{"Sport", func(p domain.Product) string { return p.Sport }},
	{"Price", func(p domain.Product) string { return money(p.UnitPrice) }},
	{"Stock", func(p domain.Product) string { return itoa(p.StockQty) }},
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}

	respondRows(w, r, "products.csv", products, productColumns, h.logger)
}

// AdjustStock applies a signed delta to a product's stock, clamped at zero
func (h *CatalogHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req AdjustStockRequest
	if !bindJSON(w, r, &req, h.logger) {
		return
	}

	adj, err := h.inventory.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}

	h.logger.Info("Stock adjusted",
		zap.Int64("product_id", adj.ProductID),
		zap.Int("delta", adj.Delta),
		zap.Int("stock_qty", adj.StockQty),
	)

	middleware.RespondWithJSON(w, http.StatusOK, adj)
}

var customerColumns = []csvColumn[domain.Customer]{
	{"Id", func(c domain.Customer) string { return itoa(c.ID) }},
	{"First Name", func(c domain.Customer) string { return c.FirstName }},
	{"Last Name", func(c domain.Customer) string { return c.LastName }},
	{"Email", func(c domain.Customer) string { return c.Email }},
	{"Phone", func(c domain.Customer) string { return c.Phone }},
}

func (h *CatalogHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.catalog.ListCustomers(r.Context())
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}

	respondRows(w, r, "customers.csv", customers, customerColumns, h.logger)
}

var employeeColumns = []csvColumn[domain.Employee]{
	{"Id", func(e domain.Employee) string { return itoa(e.ID) }},
	{"First Name", func(e domain.Employee) string { return e.FirstName }},
	{"Last Name", func(e domain.Employee) string { return e.LastName }},
	{"Role", func(e domain.Employee) string { return e.Role }},
	{"Hire Date", func(e domain.Employee) string { return e.HireDate.Format("2006-01-02") }},
}

func (h *CatalogHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.catalog.ListEmployees(r.Context())
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}

	respondRows(w, r, "employees.csv", employees, employeeColumns, h.logger)
}

func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
