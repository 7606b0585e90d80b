package handler

import (
	"net/http"
	"strconv"

	"stockledger/internal/apierror"
	"stockledger/internal/repository"
	"stockledger/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// LowStock returns products at or below their reorder level, lowest first.
func (h *ReportsHandler) LowStock(c *gin.Context) {
	items, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build low-stock report"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// LowStockPDF renders the same report as a downloadable PDF.
func (h *ReportsHandler) LowStockPDF(c *gin.Context) {
	path, err := h.svc.ExportLowStockPDF(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to generate report PDF"))
		return
	}
	c.FileAttachment(path, "low_stock.pdf")
}

func (h *ReportsHandler) SupplierStock(c *gin.Context) {
	items, err := h.svc.SupplierStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build supplier stock report"))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ReportsHandler) TransactionHistory(c *gin.Context) {
	filter := repository.StockTransactionFilter{
		Type:  c.Query("type"),
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 100),
	}
	if pid := c.Query("product_id"); pid != "" {
		id, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid product_id filter"))
			return
		}
		filter.ProductID = &id
	}

	items, total, err := h.svc.TransactionHistory(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build transaction history"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}
