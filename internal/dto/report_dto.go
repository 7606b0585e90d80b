package dto

// Report rows are scanned straight from SQL projections (see report_repo.go),
// so field names must match the selected column aliases.

type LowStockItem struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	StockQty     int     `json:"stock_qty"`
	ReorderLevel int     `json:"reorder_level"`
	SupplierName *string `json:"supplier_name"`
}

type SupplierStockItem struct {
	SupplierID   int64  `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	StockQty     int    `json:"stock_qty"`
}

type TransactionHistoryItem struct {
	TransactionID int64  `json:"transaction_id"`
	ProductID     int64  `json:"product_id"`
	ProductName   string `json:"product_name"`
	Type          string `json:"type"`
	Quantity      int    `json:"quantity"`
	CreatedAt     string `json:"created_at"`
}
