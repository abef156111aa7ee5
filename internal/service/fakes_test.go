package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"crimson-pos/internal/domain"
	"crimson-pos/internal/repository"

	"github.com/shopspring/decimal"
)

// fakeTransactionRepository keeps committed orders in memory. Writes made
// inside WithinTx are staged and only merged when the callback succeeds.
type fakeTransactionRepository struct {
	knownProducts map[int64]string
	headers       map[int64]domain.OrderSummary
	lines         map[int64][]domain.OrderLineDetail
	nextID        int64

	failLineNo int
	storeErr   error
}

func newFakeTransactionRepository(products map[int64]string) *fakeTransactionRepository {
	return &fakeTransactionRepository{
		knownProducts: products,
		headers:       make(map[int64]domain.OrderSummary),
		lines:         make(map[int64][]domain.OrderLineDetail),
	}
}

func (f *fakeTransactionRepository) WithinTx(ctx context.Context, fn func(w repository.TransactionWriter) error) error {
	w := &fakeWriter{repo: f, lines: make(map[int64][]domain.OrderLineDetail)}
	if err := fn(w); err != nil {
		return err
	}

	if w.header != nil {
		f.headers[w.header.TransactionID] = *w.header
		f.lines[w.header.TransactionID] = w.lines[w.header.TransactionID]
		f.nextID = w.header.TransactionID
	}
	return nil
}

func (f *fakeTransactionRepository) ListRecent(ctx context.Context, limit int) ([]domain.OrderSummary, error) {
	out := make([]domain.OrderSummary, 0, len(f.headers))
	for _, h := range f.headers {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID > out[j].TransactionID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTransactionRepository) FindByID(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	header, ok := f.headers[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return &domain.OrderDetail{Header: header, Lines: f.lines[id]}, nil
}

type fakeWriter struct {
	repo   *fakeTransactionRepository
	header *domain.OrderSummary
	lines  map[int64][]domain.OrderLineDetail
}

func (w *fakeWriter) InsertHeader(ctx context.Context, customerID, employeeID int64) (int64, error) {
	if w.repo.storeErr != nil {
		return 0, w.repo.storeErr
	}
	id := w.repo.nextID + 1
	w.header = &domain.OrderSummary{
		TransactionID: id,
		Subtotal:      decimal.Zero,
		Tax:           decimal.Zero,
		Total:         decimal.Zero,
	}
	return id, nil
}

func (w *fakeWriter) InsertLine(ctx context.Context, transactionID int64, lineNo int, line domain.OrderLine) error {
	if lineNo == w.repo.failLineNo {
		return fmt.Errorf("failed to insert line %d: %w", lineNo, errors.New("connection reset"))
	}
	name, ok := w.repo.knownProducts[line.ProductID]
	if !ok {
		return fmt.Errorf("line %d: %w", lineNo, repository.ErrInvalidReference)
	}
	w.lines[transactionID] = append(w.lines[transactionID], domain.OrderLineDetail{
		LineNo:    lineNo,
		Qty:       line.Qty,
		UnitPrice: line.UnitPrice,
		LineTotal: line.LineTotal(),
		ProductID: line.ProductID,
		Name:      name,
	})
	return nil
}

func (w *fakeWriter) RecomputeSubtotal(ctx context.Context, transactionID int64) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, line := range w.lines[transactionID] {
		sum = sum.Add(line.LineTotal)
	}
	return sum, nil
}

func (w *fakeWriter) UpdateTotals(ctx context.Context, transactionID int64, totals domain.Totals) error {
	w.header.Subtotal = totals.Subtotal
	w.header.Tax = totals.Tax
	w.header.Total = totals.Total
	return nil
}

type fakeProductRepository struct {
	products map[int64]domain.Product
}

func (f *fakeProductRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range f.products {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProductRepository) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	p, ok := f.products[id]
	if !ok {
		return 0, repository.ErrProductNotFound
	}
	p.StockQty = max(0, p.StockQty+delta)
	f.products[id] = p
	return p.StockQty, nil
}

// fakeUserRepository is keyed by email like the unique index it stands in for
type fakeUserRepository struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := f.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := f.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	for _, user := range f.users {
		if user.ID == id {
			now := time.Now()
			user.LastLogin = &now
			return nil
		}
	}
	return repository.ErrUserNotFound
}
