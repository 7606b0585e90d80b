package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// MoveStockRequest is shared by the receive and issue endpoints.
// The gt=0 tag rejects most invalid quantities at the edge; the service
// enforces the same rule again for non-HTTP callers.
type MoveStockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// StockLevelResponse reports the resulting on-hand count after a query or a
// successful mutation.
type StockLevelResponse struct {
	ProductID int64 `json:"product_id"`
	StockQty  int   `json:"stock_qty"`
}

type StockMovementResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	CreatedAt   string `json:"created_at"`
}

type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}
