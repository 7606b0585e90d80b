package service

import (
	"context"
	"testing"

	"stockledger/internal/dto"
	"stockledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSupplierRepo struct {
	suppliers map[int64]*model.Supplier
	nextID    int64
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[int64]*model.Supplier)}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	r.nextID++
	s.ID = r.nextID
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id int64) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	var result []model.Supplier
	for _, s := range r.suppliers {
		result = append(result, *s)
	}
	return result, nil
}

func newCatalogFixture(t *testing.T) (*stubProductRepo, *stubSupplierRepo, ProductService) {
	t.Helper()
	productRepo := newStubProductRepo()
	supplierRepo := newStubSupplierRepo()
	return productRepo, supplierRepo, NewProductService(productRepo, supplierRepo)
}

func TestCreateProductDefaultsReorderLevel(t *testing.T) {
	_, _, svc := newCatalogFixture(t)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:  "Hex Nuts M8 (bag)",
		Price: decimal.NewFromFloat(3.75),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.ReorderLevel)
	assert.Equal(t, 0, resp.StockQty)
}

func TestCreateProductExplicitReorderLevel(t *testing.T) {
	_, _, svc := newCatalogFixture(t)

	level := 25
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Washers M8 (bag)",
		Price:        decimal.NewFromFloat(1.20),
		StockQty:     40,
		ReorderLevel: &level,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.ReorderLevel)
	assert.Equal(t, 40, resp.StockQty)
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	_, _, svc := newCatalogFixture(t)

	for _, price := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-9.99)} {
		_, err := svc.Create(context.Background(), dto.CreateProductRequest{
			Name:  "Broken pricing",
			Price: price,
		})
		assert.Error(t, err)
	}
}

func TestCreateProductUnknownSupplier(t *testing.T) {
	_, _, svc := newCatalogFixture(t)

	missing := int64(42)
	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Orphan product",
		Price:      decimal.NewFromFloat(5),
		SupplierID: &missing,
	})
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestCreateProductWithSupplier(t *testing.T) {
	_, supplierRepo, svc := newCatalogFixture(t)

	supplier := &model.Supplier{Name: "Acme Wholesale"}
	require.NoError(t, supplierRepo.Create(context.Background(), supplier))

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:       "Steel Bolts M8 (box)",
		Price:      decimal.NewFromFloat(12.50),
		StockQty:   15,
		SupplierID: &supplier.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.SupplierID)
	assert.Equal(t, supplier.ID, *resp.SupplierID)
}

func TestGetProductNotFound(t *testing.T) {
	_, _, svc := newCatalogFixture(t)

	_, err := svc.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSupplierServiceRoundTrip(t *testing.T) {
	supplierRepo := newStubSupplierRepo()
	svc := NewSupplierService(supplierRepo)

	phone := "555-0101"
	created, err := svc.Create(context.Background(), dto.CreateSupplierRequest{
		Name:  "Nordic Traders",
		Phone: &phone,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nordic Traders", got.Name)
	require.NotNil(t, got.Phone)
	assert.Equal(t, phone, *got.Phone)

	_, err = svc.GetByID(context.Background(), created.ID+100)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}
