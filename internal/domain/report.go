package domain

import "github.com/shopspring/decimal"

type TopProduct struct {
	ProductID int64           `json:"product_id" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	UnitsSold int64           `json:"units_sold" db:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue" db:"revenue"`
}

type LowStockItem struct {
	ProductID int64  `json:"product_id" db:"product_id"`
	Name      string `json:"name" db:"name"`
	StockQty  int    `json:"stock_qty" db:"stock_qty"`
}

// MonthlyRevenue aggregates headers by calendar month (YYYY-MM)
type MonthlyRevenue struct {
	Month   string          `json:"month" db:"month"`
	Revenue decimal.Decimal `json:"revenue" db:"revenue"`
	Orders  int64           `json:"orders" db:"orders"`
}

type EmployeeStat struct {
	EmployeeID int64           `json:"employee_id" db:"employee_id"`
	FirstName  string          `json:"first_name" db:"first_name"`
	LastName   string          `json:"last_name" db:"last_name"`
	Orders     int64           `json:"orders" db:"orders"`
	Revenue    decimal.Decimal `json:"revenue" db:"revenue"`
}
