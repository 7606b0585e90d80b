package service

import (
	"context"
	"testing"

	"stockledger/internal/dto"
	"stockledger/internal/model"
	"stockledger/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	products map[int64]*model.Product
	nextID   int64

	// deltaErr, when set, is returned by ApplyStockDeltaTx unconditionally —
	// used to exercise the chokepoint error mapping.
	deltaErr error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[int64]*model.Product), nextID: 1000}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *stubProductRepo) FindByIDForUpdateTx(_ *gorm.DB, id int64) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) ApplyStockDeltaTx(_ *gorm.DB, id int64, delta int) (int, error) {
	if r.deltaErr != nil {
		return 0, r.deltaErr
	}
	p, ok := r.products[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	if p.StockQty+delta < 0 {
		return 0, repository.ErrNegativeStock
	}
	p.StockQty += delta
	return p.StockQty, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil } // unit test mode — runTx calls fn(nil)

// ── In-memory StockTransactionRepository stub ────────────────────────────────

type stubStockTxRepo struct {
	entries []model.StockTransaction
	nextID  int64
}

func (r *stubStockTxRepo) CreateTx(_ *gorm.DB, t *model.StockTransaction) error {
	r.nextID++
	t.ID = r.nextID
	r.entries = append(r.entries, *t)
	return nil
}

func (r *stubStockTxRepo) List(_ context.Context, filter repository.StockTransactionFilter) ([]model.StockTransaction, int64, error) {
	var result []model.StockTransaction
	for _, e := range r.entries {
		if filter.ProductID != nil && e.ProductID != *filter.ProductID {
			continue
		}
		if filter.Type != "" && string(e.Type) != filter.Type {
			continue
		}
		result = append(result, e)
	}
	return result, int64(len(result)), nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func newStockFixture(t *testing.T) (*stubProductRepo, *stubStockTxRepo, StockService) {
	t.Helper()
	productRepo := newStubProductRepo()
	txRepo := &stubStockTxRepo{}
	svc := NewStockService(productRepo, txRepo, nil)
	return productRepo, txRepo, svc
}

func addProduct(r *stubProductRepo, id int64, stock, reorder int) {
	r.products[id] = &model.Product{ID: id, Name: "Test product", StockQty: stock, ReorderLevel: reorder}
}

// ── GetStock ─────────────────────────────────────────────────────────────────

func TestGetStock(t *testing.T) {
	productRepo, txRepo, svc := newStockFixture(t)
	addProduct(productRepo, 1001, 15, 5)

	resp, err := svc.GetStock(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), resp.ProductID)
	assert.Equal(t, 15, resp.StockQty)
	assert.Empty(t, txRepo.entries, "a query must not touch the ledger")
}

func TestGetStockUnknownProduct(t *testing.T) {
	_, _, svc := newStockFixture(t)

	_, err := svc.GetStock(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// ── Receive ──────────────────────────────────────────────────────────────────

func TestReceiveIncrementsStockAndAppendsLedger(t *testing.T) {
	productRepo, txRepo, svc := newStockFixture(t)
	addProduct(productRepo, 1001, 15, 5)

	resp, err := svc.Receive(context.Background(), 1001, 20)
	require.NoError(t, err)
	assert.Equal(t, 35, resp.StockQty)
	assert.Equal(t, 35, productRepo.products[1001].StockQty)

	require.Len(t, txRepo.entries, 1)
	entry := txRepo.entries[0]
	assert.Equal(t, int64(1001), entry.ProductID)
	assert.Equal(t, model.TxIn, entry.Type)
	assert.Equal(t, 20, entry.Quantity)
}

func TestReceiveInvalidQuantity(t *testing.T) {
	productRepo, txRepo, svc := newStockFixture(t)
	addProduct(productRepo, 1001, 15, 5)

	for _, qty := range []int{0, -3} {
		_, err := svc.Receive(context.Background(), 1001, qty)

		var invalidQty *InvalidQuantityError
		require.ErrorAs(t, err, &invalidQty)
		assert.Equal(t, qty, invalidQty.Qty)
	}
	assert.Equal(t, 15, productRepo.products[1001].StockQty, "failed receive must not change stock")
	assert.Empty(t, txRepo.entries, "failed receive must not touch the ledger")
}

func TestReceiveUnknownProduct(t *testing.T) {
	_, txRepo, svc := newStockFixture(t)

	_, err := svc.Receive(context.Background(), 999, 10)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, txRepo.entries)
}

// ── Issue ────────────────────────────────────────────────────────────────────

func TestIssueDecrementsStockAndAppendsLedger(t *testing.T) {
	productRepo, txRepo, svc := newStockFixture(t)
	addProduct(productRepo, 1001, 35, 5)

	resp, err := svc.Issue(context.Background(), 1001, 12)
	require.NoError(t, err)
	assert.Equal(t, 23, resp.StockQty)
	assert.Equal(t, 23, productRepo.products[1001].StockQty)

	require.Len(t, txRepo.entries, 1)
	entry := txRepo.entries[0]
	assert.Equal(t, model.TxOut, entry.Type)
	assert.Equal(t, 12, entry.Quantity)
}

func TestIssueInsufficientStock(t *testing.T) {
	productRepo, txRepo, svc := newStockFixture(t)
	addProduct(productRepo, 1002, 8, 10)

	_, err := svc.Issue(context.Background(), 1002, 20)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(1002), insufficient.ProductID)
	assert.Equal(t, 20, insufficient.Requested)
	assert.Equal(t, 8, insufficient.Available)
	assert.Contains(t, err.Error(), "Available: 8")

	assert.Equal(t, 8, productRepo.products[1002].StockQty, "failed issue must not change stock")
	assert.Empty(t, txRepo.entries, "failed issue must not touch the ledger")
}

func TestIssueExactAvailableDrainsToZero(t *testing.T) {
	productRepo, _, svc := newStockFixture(t)
	addProduct(productRepo, 1001, 8, 0)

	resp, err := svc.Issue(context.Background(), 1001, 8)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.StockQty)
}

func TestIssueInvalidQuantity(t *testing.T) {
	productRepo, txRepo, svc := newStockFixture(t)
	addProduct(productRepo, 1001, 15, 5)

	for _, qty := range []int{0, -1} {
		_, err := svc.Issue(context.Background(), 1001, qty)

		var invalidQty *InvalidQuantityError
		require.ErrorAs(t, err, &invalidQty)
	}
	assert.Equal(t, 15, productRepo.products[1001].StockQty)
	assert.Empty(t, txRepo.entries)
}

func TestIssueUnknownProduct(t *testing.T) {
	_, _, svc := newStockFixture(t)

	_, err := svc.Issue(context.Background(), 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// ── Invariant guard ──────────────────────────────────────────────────────────

func TestChokepointRefusesNegativeResult(t *testing.T) {
	productRepo := newStubProductRepo()
	addProduct(productRepo, 1001, 10, 5)

	// A direct delta past the chokepoint — not via Receive/Issue — must be
	// refused and leave the quantity untouched.
	_, err := productRepo.ApplyStockDeltaTx(nil, 1001, -15)
	assert.ErrorIs(t, err, repository.ErrNegativeStock)
	assert.Equal(t, 10, productRepo.products[1001].StockQty)
}

func TestIssueMapsGuardTripToNegativeStockError(t *testing.T) {
	productRepo, txRepo, svc := newStockFixture(t)
	addProduct(productRepo, 1001, 10, 5)
	productRepo.deltaErr = repository.ErrNegativeStock

	_, err := svc.Issue(context.Background(), 1001, 5)

	var negative *NegativeStockError
	require.ErrorAs(t, err, &negative)
	assert.Equal(t, int64(1001), negative.ProductID)
	assert.Empty(t, txRepo.entries, "no ledger row may exist for a rejected write")
}

// ── Acceptance scenarios ─────────────────────────────────────────────────────

func TestScenarioReceiveThenIssue(t *testing.T) {
	productRepo, txRepo, svc := newStockFixture(t)
	addProduct(productRepo, 1001, 15, 5)

	resp, err := svc.Receive(context.Background(), 1001, 20)
	require.NoError(t, err)
	assert.Equal(t, 35, resp.StockQty)

	resp, err = svc.Issue(context.Background(), 1001, 12)
	require.NoError(t, err)
	assert.Equal(t, 23, resp.StockQty)

	require.Len(t, txRepo.entries, 2)
	assert.Equal(t, model.TxIn, txRepo.entries[0].Type)
	assert.Equal(t, 20, txRepo.entries[0].Quantity)
	assert.Equal(t, model.TxOut, txRepo.entries[1].Type)
	assert.Equal(t, 12, txRepo.entries[1].Quantity)
}

func TestScenarioStockNeverGoesNegative(t *testing.T) {
	productRepo, _, svc := newStockFixture(t)
	addProduct(productRepo, 1002, 8, 10)

	// Alternating receives and issues, some of which must fail — the
	// quantity must stay non-negative throughout.
	ops := []struct {
		issue bool
		qty   int
	}{
		{true, 5}, {true, 5}, {false, 4}, {true, 7}, {true, 1}, {false, 2}, {true, 3},
	}
	for _, op := range ops {
		if op.issue {
			_, _ = svc.Issue(context.Background(), 1002, op.qty)
		} else {
			_, _ = svc.Receive(context.Background(), 1002, op.qty)
		}
		assert.GreaterOrEqual(t, productRepo.products[1002].StockQty, 0)
	}
}

// ── Movements listing ────────────────────────────────────────────────────────

func TestListMovementsFiltersByProduct(t *testing.T) {
	productRepo, _, svc := newStockFixture(t)
	addProduct(productRepo, 1001, 15, 5)
	addProduct(productRepo, 1002, 8, 10)

	_, err := svc.Receive(context.Background(), 1001, 5)
	require.NoError(t, err)
	_, err = svc.Receive(context.Background(), 1002, 3)
	require.NoError(t, err)
	_, err = svc.Issue(context.Background(), 1001, 2)
	require.NoError(t, err)

	pid := int64(1001)
	resp, err := svc.ListMovements(context.Background(), repository.StockTransactionFilter{ProductID: &pid})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	for _, item := range resp.Items {
		assert.Equal(t, pid, item.ProductID)
	}
}
