package repository

import (
	"context"
	"errors"

	"stockledger/internal/dto"
	"stockledger/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNegativeStock is returned by ApplyStockDeltaTx when the requested delta
// would leave stock_qty below zero. The matching CHECK constraint installed in
// infra/database.go rejects writes that bypass this repository entirely.
var ErrNegativeStock = errors.New("stock update rejected: resulting quantity would be negative")

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdateTx takes a row lock so concurrent mutators on the same
	// product serialize instead of losing updates.
	FindByIDForUpdateTx(tx *gorm.DB, id int64) (*model.Product, error)

	// ApplyStockDeltaTx is the single write chokepoint for stock_qty. Every
	// mutation path goes through it; the guarded UPDATE refuses any delta that
	// would leave the quantity negative, independent of what the caller
	// checked beforehand. Returns the resulting quantity.
	ApplyStockDeltaTx(tx *gorm.DB, id int64, delta int) (int, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Supplier").First(&p, id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}

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

	err := q.Preload("Supplier").Order("name ASC").Limit(limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByIDForUpdateTx(tx *gorm.DB, id int64) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *productRepo) ApplyStockDeltaTx(tx *gorm.DB, id int64, delta int) (int, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock_qty + ? >= 0", id, delta).
		Update("stock_qty", gorm.Expr("stock_qty + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// Zero rows means either the product does not exist or the guard
		// predicate refused the delta — re-read inside the same tx to tell
		// them apart.
		var p model.Product
		if err := tx.Select("id").First(&p, id).Error; err != nil {
			return 0, err // gorm.ErrRecordNotFound for unknown product
		}
		return 0, ErrNegativeStock
	}

	var p model.Product
	if err := tx.Select("stock_qty").First(&p, id).Error; err != nil {
		return 0, err
	}
	return p.StockQty, nil
}

func (r *productRepo) DB() *gorm.DB { return r.db }
