package model

import "time"

// Supplier is immutable after creation: no update or delete operations exist,
// so rows referenced by products can never disappear underneath them.
type Supplier struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"not null;index"`
	Phone     *string `gorm:"type:varchar(30)"`
	City      *string
	CreatedAt time.Time

	Products []Product `gorm:"foreignKey:SupplierID"`
}

func (Supplier) TableName() string { return "suppliers" }
