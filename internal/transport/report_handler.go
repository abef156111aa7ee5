package transport

import (
	"net/http"

	"crimson-pos/internal/domain"
	"crimson-pos/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReportHandler serves the read-only sales reports
type ReportHandler struct {
	reports service.ReportService
	logger  *zap.Logger
}

func NewReportHandler(reports service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger,
	}
}

func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/top-products", h.TopProducts)
		r.Get("/low-stock", h.LowStock)
		r.Get("/revenue-by-month", h.RevenueByMonth)
		r.Get("/employee-stats", h.EmployeeStats)
	})
}

var topProductColumns = []csvColumn[domain.TopProduct]{
	{"Product", func(p domain.TopProduct) string { return p.Name }},
	{"Units", func(p domain.TopProduct) string { return itoa(p.UnitsSold) }},
	{"Revenue", func(p domain.TopProduct) string { return money(p.Revenue) }},
}

func (h *ReportHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.TopProducts(r.Context())
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}
	respondRows(w, r, "top_products.csv", rows, topProductColumns, h.logger)
}

var lowStockColumns = []csvColumn[domain.LowStockItem]{
	{"Product", func(p domain.LowStockItem) string { return p.Name }},
	{"Stock", func(p domain.LowStockItem) string { return itoa(p.StockQty) }},
}

func (h *ReportHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.LowStock(r.Context())
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}
	respondRows(w, r, "low_stock.csv", rows, lowStockColumns, h.logger)
}

var revenueByMonthColumns = []csvColumn[domain.MonthlyRevenue]{
	{"Month", func(m domain.MonthlyRevenue) string { return m.Month }},
	{"Revenue", func(m domain.MonthlyRevenue) string { return money(m.Revenue) }},
	{"Orders", func(m domain.MonthlyRevenue) string { return itoa(m.Orders) }},
}

func (h *ReportHandler) RevenueByMonth(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.RevenueByMonth(r.Context())
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}
	respondRows(w, r, "revenue_by_month.csv", rows, revenueByMonthColumns, h.logger)
}

var employeeStatColumns = []csvColumn[domain.EmployeeStat]{
	{"Employee", func(e domain.EmployeeStat) string { return joinName(e.FirstName, e.LastName) }},
	{"Orders", func(e domain.EmployeeStat) string { return itoa(e.Orders) }},
	{"Revenue", func(e domain.EmployeeStat) string { return money(e.Revenue) }},
}

func (h *ReportHandler) EmployeeStats(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.EmployeeStats(r.Context())
	if err != nil {
		respondServiceError(w, r, err, h.logger)
		return
	}
	respondRows(w, r, "employee_stats.csv", rows, employeeStatColumns, h.logger)
}
