package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-bms/meridian/internal/listing"
)

type memoryOrderRepo struct {
	purchases    map[int64]PurchaseOrder
	sales        map[int64]SaleOrder
	requisitions map[int64]RequisitionOrder
	nextID       int64
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{
		purchases:    make(map[int64]PurchaseOrder),
		sales:        make(map[int64]SaleOrder),
		requisitions: make(map[int64]RequisitionOrder),
	}
}

func (r *memoryOrderRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *memoryOrderRepo) ListPurchase(ctx context.Context, companyID int64) ([]PurchaseOrder, error) {
	var out []PurchaseOrder
	for _, o := range r.purchases {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memoryOrderRepo) GetPurchase(ctx context.Context, companyID, orderID int64) (PurchaseOrder, error) {
	return r.purchases[orderID], nil
}

func (r *memoryOrderRepo) CreatePurchase(ctx context.Context, companyID int64, order PurchaseOrder) (PurchaseOrder, error) {
	order.ID = r.id()
	r.purchases[order.ID] = order
	return order, nil
}

func (r *memoryOrderRepo) UpdatePurchase(ctx context.Context, companyID int64, order PurchaseOrder) (PurchaseOrder, error) {
	r.purchases[order.ID] = order
	return order, nil
}

func (r *memoryOrderRepo) DeletePurchase(ctx context.Context, companyID, orderID int64) error {
	delete(r.purchases, orderID)
	return nil
}

func (r *memoryOrderRepo) ListSales(ctx context.Context, branchID int64) ([]SaleOrder, error) {
	var out []SaleOrder
	for _, o := range r.sales {
		if o.BranchID == branchID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memoryOrderRepo) GetSale(ctx context.Context, branchID, orderID int64) (SaleOrder, error) {
	return r.sales[orderID], nil
}

func (r *memoryOrderRepo) CreateSale(ctx context.Context, branchID int64, order SaleOrder) (SaleOrder, error) {
	order.ID = r.id()
	r.sales[order.ID] = order
	return order, nil
}

func (r *memoryOrderRepo) UpdateSale(ctx context.Context, branchID int64, order SaleOrder) (SaleOrder, error) {
	r.sales[order.ID] = order
	return order, nil
}

func (r *memoryOrderRepo) DeleteSale(ctx context.Context, branchID, orderID int64) error {
	delete(r.sales, orderID)
	return nil
}

func (r *memoryOrderRepo) ListRequisitions(ctx context.Context, branchID int64) ([]RequisitionOrder, error) {
	var out []RequisitionOrder
	for _, o := range r.requisitions {
		out = append(out, o)
	}
	return out, nil
}

func (r *memoryOrderRepo) GetRequisition(ctx context.Context, branchID, orderID int64) (RequisitionOrder, error) {
	return r.requisitions[orderID], nil
}

func (r *memoryOrderRepo) CreateRequisition(ctx context.Context, branchID int64, order RequisitionOrder) (RequisitionOrder, error) {
	order.ID = r.id()
	r.requisitions[order.ID] = order
	return order, nil
}

func (r *memoryOrderRepo) UpdateRequisition(ctx context.Context, branchID int64, order RequisitionOrder) (RequisitionOrder, error) {
	r.requisitions[order.ID] = order
	return order, nil
}

func TestCreatePurchaseRequiresLines(t *testing.T) {
	svc := NewService(newMemoryOrderRepo())
	_, err := svc.CreatePurchase(context.Background(), 1, PurchaseInput{
		VendorID: 5,
		Status:   PurchasePending,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreatePurchaseRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMemoryOrderRepo())
	_, err := svc.CreatePurchase(context.Background(), 1, PurchaseInput{
		VendorID: 5,
		Status:   PurchaseStatus("MYSTERY"),
		Lines:    []LineInput{{ProductID: 1, Quantity: dec("1"), UnitPrice: dec("2")}},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreatePurchaseClampsDelivered(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo)
	order, err := svc.CreatePurchase(context.Background(), 1, PurchaseInput{
		VendorID: 5,
		Status:   PurchaseApproved,
		Lines: []LineInput{
			{ProductID: 1, Quantity: dec("4"), UnitPrice: dec("2.50"), Delivered: dec("9")},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.True(t, order.Items[0].DeliveredQuantity.Equal(dec("4")), "delivered clamped to ordered")
	require.True(t, order.Total().Equal(dec("10.00")))
}

func TestListPurchaseAppliesFilters(t *testing.T) {
	repo := newMemoryOrderRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for _, in := range []PurchaseInput{
		{VendorID: 1, Status: PurchasePending, Lines: []LineInput{{ProductID: 1, Quantity: dec("1"), UnitPrice: dec("1")}}},
		{VendorID: 2, Status: PurchaseDelivered, Lines: []LineInput{{ProductID: 1, Quantity: dec("1"), UnitPrice: dec("1")}}},
	} {
		_, err := svc.CreatePurchase(ctx, 1, in)
		require.NoError(t, err)
	}

	filtered, err := svc.ListPurchase(ctx, 1, listing.FromQuery("", "DELIVERED"))
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, PurchaseDelivered, filtered[0].Status)
}

func TestCreateSaleRequiresClient(t *testing.T) {
	svc := NewService(newMemoryOrderRepo())
	_, err := svc.CreateSale(context.Background(), 3, SaleInput{
		Status: SalePending,
		Lines:  []LineInput{{ProductID: 1, Quantity: dec("1"), UnitPrice: dec("1")}},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateRequisitionRejectsSameBranch(t *testing.T) {
	svc := NewService(newMemoryOrderRepo())
	_, err := svc.CreateRequisition(context.Background(), 3, RequisitionInput{
		SourceBranchID:      3,
		DestinationBranchID: 3,
		Status:              RequisitionPending,
		Lines:               []LineInput{{ProductID: 1, Quantity: dec("1"), UnitPrice: dec("1")}},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateRequisitionClampsFulfilled(t *testing.T) {
	svc := NewService(newMemoryOrderRepo())
	order, err := svc.CreateRequisition(context.Background(), 3, RequisitionInput{
		SourceBranchID:      3,
		DestinationBranchID: 4,
		Status:              RequisitionApproved,
		Lines: []LineInput{
			{ProductID: 1, Quantity: dec("5"), UnitPrice: dec("1"), Fulfilled: dec("8")},
		},
	})
	require.NoError(t, err)
	require.True(t, order.Items[0].QuantityFulfilled.Equal(dec("5")))
	require.True(t, order.Fulfillment().Equal(dec("100")))
}

func TestLineValidationRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(newMemoryOrderRepo())
	_, err := svc.CreateSale(context.Background(), 3, SaleInput{
		ClientID: 1,
		Status:   SalePending,
		Lines:    []LineInput{{ProductID: 1, Quantity: dec("0"), UnitPrice: dec("1")}},
	})
	require.ErrorIs(t, err, ErrValidation)
}
