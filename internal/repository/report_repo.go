package repository

import (
	"context"

	"stockledger/internal/dto"

	"gorm.io/gorm"
)

// ReportRepository serves the read-only projections. These queries never
// mutate anything — they are thin joins over products, suppliers, and the
// transaction ledger.
type ReportRepository interface {
	LowStock(ctx context.Context) ([]dto.LowStockItem, error)
	SupplierStock(ctx context.Context) ([]dto.SupplierStockItem, error)
	TransactionHistory(ctx context.Context, filter StockTransactionFilter) ([]dto.TransactionHistoryItem, int64, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	var items []dto.LowStockItem
	err := r.db.WithContext(ctx).
		Table("products p").
		Select(`p.id AS product_id, p.name AS product_name, p.stock_qty,
			p.reorder_level, s.name AS supplier_name`).
		Joins("LEFT JOIN suppliers s ON s.id = p.supplier_id").
		Where("p.stock_qty <= p.reorder_level").
		Order("p.stock_qty ASC").
		Scan(&items).Error
	return items, err
}

func (r *reportRepo) SupplierStock(ctx context.Context) ([]dto.SupplierStockItem, error) {
	var items []dto.SupplierStockItem
	err := r.db.WithContext(ctx).
		Table("products p").
		Select(`s.id AS supplier_id, s.name AS supplier_name,
			p.id AS product_id, p.name AS product_name, p.stock_qty`).
		Joins("JOIN suppliers s ON s.id = p.supplier_id").
		Order("s.name ASC, p.stock_qty DESC").
		Scan(&items).Error
	return items, err
}

func (r *reportRepo) TransactionHistory(ctx context.Context, filter StockTransactionFilter) ([]dto.TransactionHistoryItem, int64, error) {
	q := r.db.WithContext(ctx).
		Table("stock_transactions t").
		Joins("JOIN products p ON p.id = t.product_id")
	if filter.ProductID != nil {
		q = q.Where("t.product_id = ?", *filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("t.type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var items []dto.TransactionHistoryItem
	err := q.Select(`t.id AS transaction_id, t.product_id, p.name AS product_name,
			t.type, t.quantity, to_char(t.created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF') AS created_at`).
		Order("t.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&items).Error
	return items, total, err
}
