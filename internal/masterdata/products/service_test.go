package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-bms/meridian/internal/masterdata/shared"
)

type memoryProductRepo struct {
	items  map[int64]Product
	nextID int64
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{items: map[int64]Product{}, nextID: 1}
}

func (m *memoryProductRepo) List(ctx context.Context, branchID int64) ([]Product, error) {
	out := make([]Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryProductRepo) Get(ctx context.Context, branchID, id int64) (Product, error) {
	return m.items[id], nil
}

func (m *memoryProductRepo) Create(ctx context.Context, branchID int64, product Product) (Product, error) {
	product.ID = m.nextID
	m.nextID++
	m.items[product.ID] = product
	return product, nil
}

func (m *memoryProductRepo) Update(ctx context.Context, branchID, id int64, product Product) error {
	product.ID = id
	m.items[id] = product
	return nil
}

func (m *memoryProductRepo) Delete(ctx context.Context, branchID, id int64) error {
	delete(m.items, id)
	return nil
}

func TestCreateProductParsesDecimals(t *testing.T) {
	svc := NewService(newMemoryProductRepo(), nil)

	created, err := svc.Create(context.Background(), 1, ProductForm{
		SKU: "W-1", Name: "Widget", Category: "hardware",
		Price: "19.99", VATRate: "7.5", FixedPrice: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "19.99", created.Price.StringFixed(2))
	assert.Equal(t, "7.5", created.VATRate.String())
	assert.True(t, created.FixedPrice)
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	svc := NewService(newMemoryProductRepo(), nil)

	_, err := svc.Create(context.Background(), 1, ProductForm{
		SKU: "W-1", Name: "Widget", Category: "hardware", Price: "abc",
	})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(context.Background(), 1, ProductForm{
		SKU: "W-1", Name: "Widget", Category: "hardware", Price: "-4",
	})
	require.ErrorIs(t, err, shared.ErrValidation)

	errs := FieldErrors(ProductForm{SKU: "W-1", Name: "Widget", Category: "hardware", Price: "abc"})
	assert.Contains(t, errs, "Price")
}

func TestVATRateOptional(t *testing.T) {
	svc := NewService(newMemoryProductRepo(), nil)

	created, err := svc.Create(context.Background(), 1, ProductForm{
		SKU: "W-1", Name: "Widget", Category: "hardware", Price: "10",
	})
	require.NoError(t, err)
	assert.True(t, created.VATRate.IsZero())
}
