package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product carries the authoritative on-hand count (StockQty). StockQty is a
// cached running total maintained by the stock mutators — it is never
// recomputed from the ledger. Every change to it must go through
// ProductRepository.ApplyStockDeltaTx together with exactly one
// StockTransaction row.
type Product struct {
	// IDs are assigned by a sequence starting at 1001 (see infra/database.go),
	// above the supplier id range.
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	Name         string          `gorm:"index;not null"`
	SupplierID   *int64          `gorm:"index"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null;check:price > 0"`
	StockQty     int             `gorm:"not null;default:0"`
	ReorderLevel int             `gorm:"not null;default:10"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

func (Product) TableName() string { return "products" }
