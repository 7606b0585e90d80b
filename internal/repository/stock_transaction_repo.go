package repository

import (
	"context"

	"stockledger/internal/model"

	"gorm.io/gorm"
)

// StockTransactionFilter defines filters for listing ledger entries.
type StockTransactionFilter struct {
	ProductID *int64
	Type      string
	Page      int
	Limit     int
}

// StockTransactionRepository appends and lists ledger entries. The ledger is
// append-only: there are deliberately no Update or Delete methods.
type StockTransactionRepository interface {
	CreateTx(tx *gorm.DB, t *model.StockTransaction) error
	List(ctx context.Context, filter StockTransactionFilter) ([]model.StockTransaction, int64, error)
}

type stockTransactionRepo struct{ db *gorm.DB }

func NewStockTransactionRepository(db *gorm.DB) StockTransactionRepository {
	return &stockTransactionRepo{db: db}
}

func (r *stockTransactionRepo) CreateTx(tx *gorm.DB, t *model.StockTransaction) error {
	return tx.Create(t).Error
}

func (r *stockTransactionRepo) List(ctx context.Context, filter StockTransactionFilter) ([]model.StockTransaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockTransaction{}).
		Preload("Product")
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
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

	var transactions []model.StockTransaction
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&transactions).Error
	return transactions, total, err
}
