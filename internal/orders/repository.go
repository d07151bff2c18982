package orders

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/session"
)

// RepositoryPort describes the remote API operations used by Service.
type RepositoryPort interface {
	ListPurchase(ctx context.Context, companyID int64) ([]PurchaseOrder, error)
	GetPurchase(ctx context.Context, companyID, orderID int64) (PurchaseOrder, error)
	CreatePurchase(ctx context.Context, companyID int64, order PurchaseOrder) (PurchaseOrder, error)
	UpdatePurchase(ctx context.Context, companyID int64, order PurchaseOrder) (PurchaseOrder, error)
	DeletePurchase(ctx context.Context, companyID, orderID int64) error

	ListSales(ctx context.Context, branchID int64) ([]SaleOrder, error)
	GetSale(ctx context.Context, branchID, orderID int64) (SaleOrder, error)
	CreateSale(ctx context.Context, branchID int64, order SaleOrder) (SaleOrder, error)
	UpdateSale(ctx context.Context, branchID int64, order SaleOrder) (SaleOrder, error)
	DeleteSale(ctx context.Context, branchID, orderID int64) error

	ListRequisitions(ctx context.Context, branchID int64) ([]RequisitionOrder, error)
	GetRequisition(ctx context.Context, branchID, orderID int64) (RequisitionOrder, error)
	CreateRequisition(ctx context.Context, branchID int64, order RequisitionOrder) (RequisitionOrder, error)
	UpdateRequisition(ctx context.Context, branchID int64, order RequisitionOrder) (RequisitionOrder, error)
}

// Repository fetches and mutates orders through the remote API.
type Repository struct {
	client *api.Client
}

// NewRepository constructs a Repository.
func NewRepository(client *api.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) ListPurchase(ctx context.Context, companyID int64) ([]PurchaseOrder, error) {
	var out []PurchaseOrder
	path := fmt.Sprintf("/api/companies/%d/purchase-orders/", companyID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) GetPurchase(ctx context.Context, companyID, orderID int64) (PurchaseOrder, error) {
	var out PurchaseOrder
	path := fmt.Sprintf("/api/companies/%d/purchase-orders/%d/", companyID, orderID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return PurchaseOrder{}, err
	}
	return out, nil
}

func (r *Repository) CreatePurchase(ctx context.Context, companyID int64, order PurchaseOrder) (PurchaseOrder, error) {
	var out PurchaseOrder
	path := fmt.Sprintf("/api/companies/%d/purchase-orders/", companyID)
	if err := r.client.Post(ctx, session.AccessToken(ctx), path, order, &out); err != nil {
		return PurchaseOrder{}, err
	}
	return out, nil
}

func (r *Repository) UpdatePurchase(ctx context.Context, companyID int64, order PurchaseOrder) (PurchaseOrder, error) {
	var out PurchaseOrder
	path := fmt.Sprintf("/api/companies/%d/purchase-orders/%d/", companyID, order.ID)
	if err := r.client.Put(ctx, session.AccessToken(ctx), path, order, &out); err != nil {
		return PurchaseOrder{}, err
	}
	return out, nil
}

func (r *Repository) DeletePurchase(ctx context.Context, companyID, orderID int64) error {
	path := fmt.Sprintf("/api/companies/%d/purchase-orders/%d/", companyID, orderID)
	return r.client.Delete(ctx, session.AccessToken(ctx), path)
}

func (r *Repository) ListSales(ctx context.Context, branchID int64) ([]SaleOrder, error) {
	var out []SaleOrder
	path := fmt.Sprintf("/api/branches/%d/sale-orders/", branchID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) GetSale(ctx context.Context, branchID, orderID int64) (SaleOrder, error) {
	var out SaleOrder
	path := fmt.Sprintf("/api/branches/%d/sale-orders/%d/", branchID, orderID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return SaleOrder{}, err
	}
	return out, nil
}

func (r *Repository) CreateSale(ctx context.Context, branchID int64, order SaleOrder) (SaleOrder, error) {
	var out SaleOrder
	path := fmt.Sprintf("/api/branches/%d/sale-orders/", branchID)
	if err := r.client.Post(ctx, session.AccessToken(ctx), path, order, &out); err != nil {
		return SaleOrder{}, err
	}
	return out, nil
}

func (r *Repository) UpdateSale(ctx context.Context, branchID int64, order SaleOrder) (SaleOrder, error) {
	var out SaleOrder
	path := fmt.Sprintf("/api/branches/%d/sale-orders/%d/", branchID, order.ID)
	if err := r.client.Put(ctx, session.AccessToken(ctx), path, order, &out); err != nil {
		return SaleOrder{}, err
	}
	return out, nil
}

func (r *Repository) DeleteSale(ctx context.Context, branchID, orderID int64) error {
	path := fmt.Sprintf("/api/branches/%d/sale-orders/%d/", branchID, orderID)
	return r.client.Delete(ctx, session.AccessToken(ctx), path)
}

func (r *Repository) ListRequisitions(ctx context.Context, branchID int64) ([]RequisitionOrder, error) {
	var out []RequisitionOrder
	path := fmt.Sprintf("/api/branches/%d/requisition-orders/", branchID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) GetRequisition(ctx context.Context, branchID, orderID int64) (RequisitionOrder, error) {
	var out RequisitionOrder
	path := fmt.Sprintf("/api/branches/%d/requisition-orders/%d/", branchID, orderID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return RequisitionOrder{}, err
	}
	return out, nil
}

func (r *Repository) CreateRequisition(ctx context.Context, branchID int64, order RequisitionOrder) (RequisitionOrder, error) {
	var out RequisitionOrder
	path := fmt.Sprintf("/api/branches/%d/requisition-orders/", branchID)
	if err := r.client.Post(ctx, session.AccessToken(ctx), path, order, &out); err != nil {
		return RequisitionOrder{}, err
	}
	return out, nil
}

func (r *Repository) UpdateRequisition(ctx context.Context, branchID int64, order RequisitionOrder) (RequisitionOrder, error) {
	var out RequisitionOrder
	path := fmt.Sprintf("/api/branches/%d/requisition-orders/%d/", branchID, order.ID)
	if err := r.client.Put(ctx, session.AccessToken(ctx), path, order, &out); err != nil {
		return RequisitionOrder{}, err
	}
	return out, nil
}
