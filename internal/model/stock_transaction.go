package model

import "time"

type TransactionType string

const (
	TxIn  TransactionType = "IN"
	TxOut TransactionType = "OUT"
)

// StockTransaction is the append-only audit trail of stock movements.
// Rows are never updated or deleted. Quantity is strictly positive —
// direction is carried by Type, not by sign.
type StockTransaction struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	ProductID int64           `gorm:"not null;index"`
	Type      TransactionType `gorm:"type:varchar(10);not null"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (StockTransaction) TableName() string { return "stock_transactions" }
