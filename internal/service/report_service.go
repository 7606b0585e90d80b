package service

import (
	"context"

	"stockledger/internal/dto"
	"stockledger/internal/infra"
	"stockledger/internal/repository"
)

// ReportService exposes the read-only projections. No invariants of its own
// beyond correct joins and ordering — those live in the SQL (report_repo.go).
type ReportService interface {
	LowStock(ctx context.Context) ([]dto.LowStockItem, error)
	SupplierStock(ctx context.Context) ([]dto.SupplierStockItem, error)
	TransactionHistory(ctx context.Context, filter repository.StockTransactionFilter) ([]dto.TransactionHistoryItem, int64, error)
	ExportLowStockPDF(ctx context.Context) (string, error)
}

type reportService struct {
	repo        repository.ReportRepository
	storagePath string
}

func NewReportService(repo repository.ReportRepository, storagePath string) ReportService {
	return &reportService{repo: repo, storagePath: storagePath}
}

func (s *reportService) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	return s.repo.LowStock(ctx)
}

func (s *reportService) SupplierStock(ctx context.Context) ([]dto.SupplierStockItem, error) {
	return s.repo.SupplierStock(ctx)
}

func (s *reportService) TransactionHistory(ctx context.Context, filter repository.StockTransactionFilter) ([]dto.TransactionHistoryItem, int64, error) {
	return s.repo.TransactionHistory(ctx, filter)
}

func (s *reportService) ExportLowStockPDF(ctx context.Context) (string, error) {
	items, err := s.repo.LowStock(ctx)
	if err != nil {
		return "", err
	}
	return infra.GenerateLowStockPDF(items, s.storagePath)
}
