package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Largest values the sales tables can hold: qty is INTEGER, unit prices are
// DECIMAL(10,2) and line and order amounts are DECIMAL(12,2).
const MaxQty = math.MaxInt32

var (
	MaxUnitPrice = decimal.RequireFromString("99999999.99")
	MaxAmount    = decimal.RequireFromString("9999999999.99")
)

// OrderLine is one requested product entry of a new sale
type OrderLine struct {
	ProductID int64
	Qty       int
	UnitPrice decimal.Decimal
}

// LineTotal is qty × unit price.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Totals are the money figures stored on a transaction header
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives tax and total from a subtotal. Tax is rounded once,
// on the aggregate, to cents using banker's rounding.
func ComputeTotals(subtotal, taxRate decimal.Decimal) Totals {
	tax := subtotal.Mul(taxRate).RoundBank(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// PlacedOrder is returned to the caller once a sale is committed
type PlacedOrder struct {
	TransactionID int64           `json:"transactionId"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// OrderSummary is a transaction header joined with customer and employee names
type OrderSummary struct {
	TransactionID   int64           `json:"transaction_id" db:"transaction_id"`
	TransactionDate time.Time       `json:"transaction_date" db:"transaction_date"`
	FirstName       string          `json:"first_name" db:"first_name"`
	LastName        string          `json:"last_name" db:"last_name"`
	EmpFirstName    string          `json:"emp_first_name" db:"emp_first_name"`
	EmpLastName     string          `json:"emp_last_name" db:"emp_last_name"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax             decimal.Decimal `json:"tax" db:"tax"`
	Total           decimal.Decimal `json:"total" db:"total"`
}

// OrderLineDetail is a stored line joined with its product name
type OrderLineDetail struct {
	LineNo    int             `json:"line_no" db:"line_no"`
	Qty       int             `json:"qty" db:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total" db:"line_total"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Name      string          `json:"name" db:"name"`
}

// OrderDetail is a header plus its lines ordered by line number
type OrderDetail struct {
	Header OrderSummary      `json:"header"`
	Lines  []OrderLineDetail `json:"lines"`
}
