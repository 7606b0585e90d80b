package service

import (
	"context"
	"errors"

	"stockledger/internal/dto"
	"stockledger/internal/model"
	"stockledger/internal/repository"
	"stockledger/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StockService owns the stock-mutation core: the two operations that change
// stock_qty and append to the transaction ledger, plus the read-only level
// query. Each mutation runs as one GORM transaction — the quantity update and
// the ledger append commit together or not at all.
type StockService interface {
	GetStock(ctx context.Context, productID int64) (*dto.StockLevelResponse, error)
	Receive(ctx context.Context, productID int64, quantity int) (*dto.StockLevelResponse, error)
	Issue(ctx context.Context, productID int64, quantity int) (*dto.StockLevelResponse, error)
	ListMovements(ctx context.Context, filter repository.StockTransactionFilter) (*dto.StockMovementListResponse, error)
}

type stockService struct {
	productRepo repository.ProductRepository
	txRepo      repository.StockTransactionRepository
	dispatcher  *worker.Dispatcher // nil in unit tests — alerts are best-effort
}

func NewStockService(
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
	dispatcher *worker.Dispatcher,
) StockService {
	return &stockService{productRepo: productRepo, txRepo: txRepo, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *stockService) GetStock(ctx context.Context, productID int64) (*dto.StockLevelResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapProductErr(err)
	}
	return &dto.StockLevelResponse{ProductID: p.ID, StockQty: p.StockQty}, nil
}

func (s *stockService) Receive(ctx context.Context, productID int64, quantity int) (*dto.StockLevelResponse, error) {
	if quantity <= 0 {
		return nil, &InvalidQuantityError{Qty: quantity}
	}

	var newQty int
	txErr := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		// Row lock so a concurrent issue on the same product serializes
		// against us instead of reading a stale quantity.
		if _, err := s.productRepo.FindByIDForUpdateTx(tx, productID); err != nil {
			return mapProductErr(err)
		}

		q, err := s.productRepo.ApplyStockDeltaTx(tx, productID, quantity)
		if err != nil {
			return mapDeltaErr(err, productID)
		}
		newQty = q

		return s.txRepo.CreateTx(tx, &model.StockTransaction{
			ProductID: productID,
			Type:      model.TxIn,
			Quantity:  quantity,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.StockLevelResponse{ProductID: productID, StockQty: newQty}, nil
}

func (s *stockService) Issue(ctx context.Context, productID int64, quantity int) (*dto.StockLevelResponse, error) {
	if quantity <= 0 {
		return nil, &InvalidQuantityError{Qty: quantity}
	}

	var newQty int
	var product *model.Product
	txErr := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.productRepo.FindByIDForUpdateTx(tx, productID)
		if err != nil {
			return mapProductErr(err)
		}
		product = p

		// Precondition under the row lock: the available quantity cannot
		// shrink between this check and the update below.
		if p.StockQty < quantity {
			return &InsufficientStockError{
				ProductID: productID,
				Requested: quantity,
				Available: p.StockQty,
			}
		}

		q, err := s.productRepo.ApplyStockDeltaTx(tx, productID, -quantity)
		if err != nil {
			return mapDeltaErr(err, productID)
		}
		newQty = q

		return s.txRepo.CreateTx(tx, &model.StockTransaction{
			ProductID: productID,
			Type:      model.TxOut,
			Quantity:  quantity,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	// Post-commit, fire-and-forget: crossing the reorder level triggers an
	// async alert. A failed enqueue never affects the issue result.
	if s.dispatcher != nil && newQty <= product.ReorderLevel {
		payload := worker.LowStockAlertPayload{
			ProductID:    productID,
			ProductName:  product.Name,
			StockQty:     newQty,
			ReorderLevel: product.ReorderLevel,
		}
		if err := s.dispatcher.EnqueueLowStockAlert(ctx, payload); err != nil {
			log.Warn().Err(err).Int64("product_id", productID).Msg("failed to enqueue low-stock alert")
		}
	}

	return &dto.StockLevelResponse{ProductID: productID, StockQty: newQty}, nil
}

func (s *stockService) ListMovements(ctx context.Context, filter repository.StockTransactionFilter) (*dto.StockMovementListResponse, error) {
	movements, total, err := s.txRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}

	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		item := dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      string(m.Type),
			Quantity:  m.Quantity,
			CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if m.Product != nil {
			item.ProductName = m.Product.Name
		}
		items = append(items, item)
	}

	return &dto.StockMovementListResponse{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func mapProductErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return err
}

func mapDeltaErr(err error, productID int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	if errors.Is(err, repository.ErrNegativeStock) {
		return &NegativeStockError{ProductID: productID}
	}
	return err
}
