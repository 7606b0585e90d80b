package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name  string  `json:"name"  validate:"required,min=2"`
	Phone *string `json:"phone"`
	City  *string `json:"city"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SupplierResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	City  *string `json:"city,omitempty"`
}
