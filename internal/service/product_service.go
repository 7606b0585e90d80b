package service

import (
	"context"
	"errors"

	"stockledger/internal/dto"
	"stockledger/internal/model"
	"stockledger/internal/repository"

	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
}

type productService struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

func NewProductService(repo repository.ProductRepository, supplierRepo repository.SupplierRepository) ProductService {
	return &productService{repo: repo, supplierRepo: supplierRepo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	// Validator already enforces price > 0 at the edge; enforce again here so
	// non-HTTP callers get the same contract (the DB CHECK is the last line).
	if !req.Price.IsPositive() {
		return nil, errors.New("price must be greater than zero")
	}
	if req.SupplierID != nil {
		if _, err := s.supplierRepo.FindByID(ctx, *req.SupplierID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSupplierNotFound
			}
			return nil, err
		}
	}

	product := &model.Product{
		Name:         req.Name,
		SupplierID:   req.SupplierID,
		Price:        req.Price,
		StockQty:     req.StockQty,
		ReorderLevel: 10,
	}
	if req.ReorderLevel != nil {
		product.ReorderLevel = *req.ReorderLevel
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapProductErr(err)
	}
	return productToResponse(product), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
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

	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SupplierID:   p.SupplierID,
		Price:        p.Price,
		StockQty:     p.StockQty,
		ReorderLevel: p.ReorderLevel,
	}
	if p.Supplier != nil {
		resp.SupplierName = &p.Supplier.Name
	}
	return resp
}
