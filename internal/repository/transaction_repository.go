package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crimson-pos/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// TransactionRepository defines data access for sale headers and lines
type TransactionRepository interface {
	// WithinTx runs fn inside one database transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	WithinTx(ctx context.Context, fn func(w TransactionWriter) error) error
	ListRecent(ctx context.Context, limit int) ([]domain.OrderSummary, error)
	FindByID(ctx context.Context, id int64) (*domain.OrderDetail, error)
}

// TransactionWriter is the set of writes available inside WithinTx
type TransactionWriter interface {
	InsertHeader(ctx context.Context, customerID, employeeID int64) (int64, error)
	InsertLine(ctx context.Context, transactionID int64, lineNo int, line domain.OrderLine) error
	RecomputeSubtotal(ctx context.Context, transactionID int64) (decimal.Decimal, error)
	UpdateTotals(ctx context.Context, transactionID int64, totals domain.Totals) error
}

type transactionRepository struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a new instance of TransactionRepository
func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) WithinTx(ctx context.Context, fn func(w TransactionWriter) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&txWriter{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type txWriter struct {
	tx *sqlx.Tx
}

// InsertHeader creates a header with zeroed totals and returns its generated id
func (w *txWriter) InsertHeader(ctx context.Context, customerID, employeeID int64) (int64, error) {
	query := `
		INSERT INTO customer_purchase_transactions (customer_id, employee_id, subtotal, tax, total)
		VALUES ($1, $2, 0, 0, 0)
		RETURNING transaction_id
	`

	var id int64
	if err := w.tx.QueryRowxContext(ctx, query, customerID, employeeID).Scan(&id); err != nil {
		if hasPgCode(err, foreignKeyViolation) {
			return 0, fmt.Errorf("failed to insert transaction header: %w", ErrInvalidReference)
		}
		return 0, fmt.Errorf("failed to insert transaction header: %w", err)
	}
	return id, nil
}

// InsertLine stores a line with a zero line total, recomputed later
func (w *txWriter) InsertLine(ctx context.Context, transactionID int64, lineNo int, line domain.OrderLine) error {
	query := `
		INSERT INTO transaction_details (transaction_id, line_no, product_id, qty, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, 0)
	`

	_, err := w.tx.ExecContext(ctx, query, transactionID, lineNo, line.ProductID, line.Qty, line.UnitPrice)
	if err != nil {
		if hasPgCode(err, foreignKeyViolation) {
			return fmt.Errorf("failed to insert line %d: %w", lineNo, ErrInvalidReference)
		}
		if hasPgCode(err, numericValueOutOfRange) {
			return fmt.Errorf("failed to insert line %d: %w", lineNo, ErrValueOutOfRange)
		}
		return fmt.Errorf("failed to insert line %d: %w", lineNo, err)
	}
	return nil
}

// RecomputeSubtotal sets every line total to qty × unit price and returns
// their sum as re-read from the table
func (w *txWriter) RecomputeSubtotal(ctx context.Context, transactionID int64) (decimal.Decimal, error) {
	_, err := w.tx.ExecContext(ctx, `
		UPDATE transaction_details
		SET line_total = qty * unit_price
		WHERE transaction_id = $1
	`, transactionID)
	if err != nil {
		if hasPgCode(err, numericValueOutOfRange) {
			return decimal.Zero, fmt.Errorf("failed to compute line totals: %w", ErrValueOutOfRange)
		}
		return decimal.Zero, fmt.Errorf("failed to compute line totals: %w", err)
	}

	var subtotal decimal.Decimal
	err = w.tx.GetContext(ctx, &subtotal, `
		SELECT COALESCE(SUM(line_total), 0)
		FROM transaction_details
		WHERE transaction_id = $1
	`, transactionID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum line totals: %w", err)
	}
	return subtotal, nil
}

func (w *txWriter) UpdateTotals(ctx context.Context, transactionID int64, totals domain.Totals) error {
	query := `
		UPDATE customer_purchase_transactions
		SET subtotal = $2, tax = $3, total = $4
		WHERE transaction_id = $1
	`

	result, err := w.tx.ExecContext(ctx, query, transactionID, totals.Subtotal, totals.Tax, totals.Total)
	if err != nil {
		if hasPgCode(err, numericValueOutOfRange) {
			return fmt.Errorf("failed to update transaction totals: %w", ErrValueOutOfRange)
		}
		return fmt.Errorf("failed to update transaction totals: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

const orderSummaryColumns = `
	t.transaction_id,
	t.transaction_date,
	c.first_name,
	c.last_name,
	e.first_name AS emp_first_name,
	e.last_name  AS emp_last_name,
	t.subtotal,
	t.tax,
	t.total
`

// ListRecent returns the newest headers first
func (r *transactionRepository) ListRecent(ctx context.Context, limit int) ([]domain.OrderSummary, error) {
	query := `
		SELECT ` + orderSummaryColumns + `
		FROM customer_purchase_transactions t
		JOIN customers c ON c.customer_id = t.customer_id
		JOIN employees e ON e.employee_id = t.employee_id
		ORDER BY t.transaction_id DESC
		LIMIT $1
	`

	orders := []domain.OrderSummary{}
	if err := r.db.SelectContext(ctx, &orders, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// FindByID returns the header and its lines ordered by line number
func (r *transactionRepository) FindByID(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	headerQuery := `
		SELECT ` + orderSummaryColumns + `
		FROM customer_purchase_transactions t
		JOIN customers c ON c.customer_id = t.customer_id
		JOIN employees e ON e.employee_id = t.employee_id
		WHERE t.transaction_id = $1
	`
	linesQuery := `
		SELECT d.line_no, d.qty, d.unit_price, d.line_total, p.product_id, p.name
		FROM transaction_details d
		JOIN products p ON p.product_id = d.product_id
		WHERE d.transaction_id = $1
		ORDER BY d.line_no
	`

	detail := &domain.OrderDetail{Lines: []domain.OrderLineDetail{}}
	if err := r.db.GetContext(ctx, &detail.Header, headerQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	if err := r.db.SelectContext(ctx, &detail.Lines, linesQuery, id); err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}

	return detail, nil
}
