package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string          `json:"name"          validate:"required,min=1"`
	SupplierID   *int64          `json:"supplier_id"`
	Price        decimal.Decimal `json:"price"         validate:"required,gt=0"`
	StockQty     int             `json:"stock_qty"     validate:"min=0"`
	ReorderLevel *int            `json:"reorder_level" validate:"omitempty,min=0"`
}

type ProductFilter struct {
	Name       string
	SupplierID string
	Page       int
	Limit      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SupplierID   *int64          `json:"supplier_id"`
	SupplierName *string         `json:"supplier_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	StockQty     int             `json:"stock_qty"`
	ReorderLevel int             `json:"reorder_level"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type PriceResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}
