package domain

import "github.com/shopspring/decimal"

// LowStockThreshold is the stock level at or below which a product needs replenishment.
const LowStockThreshold = 5

// Product represents an item in the store catalog
type Product struct {
	ID        int64           `json:"product_id" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Category  string          `json:"category" db:"category"`
	Sport     string          `json:"sport" db:"sport"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	StockQty  int             `json:"stock_qty" db:"stock_qty"`
	Active    bool            `json:"active" db:"active"`
}

// StockAdjustment is the outcome of applying a delta to a product's stock
type StockAdjustment struct {
	ProductID int64 `json:"productId"`
	Delta     int   `json:"delta"`
	StockQty  int   `json:"stockQty"`
}
