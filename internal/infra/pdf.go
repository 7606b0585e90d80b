package infra

// pdf.go — low-stock report export using go-pdf/fpdf.
// Renders an A4 table: product, supplier, on-hand quantity, reorder level.
// The output file is saved to storagePath/low_stock_{timestamp}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stockledger/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateLowStockPDF writes the low-stock report to storagePath (created if
// needed) and returns the absolute path of the generated file.
func GenerateLowStockPDF(items []dto.LowStockItem, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("low_stock_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Low Stock Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	colW := []float64{20, 70, 45, 22, 23}
	headers := []string{"ID", "Product", "Supplier", "Stock", "Reorder"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		supplier := "-"
		if item.SupplierName != nil {
			supplier = *item.SupplierName
		}
		pdf.CellFormat(colW[0], 6, fmt.Sprintf("%d", item.ProductID), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[1], 6, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 6, supplier, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 6, fmt.Sprintf("%d", item.StockQty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[4], 6, fmt.Sprintf("%d", item.ReorderLevel), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if len(items) == 0 {
		pdf.CellFormat(contentW, 8, "No products at or below their reorder level.", "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
