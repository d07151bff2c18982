package billing

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/session"
)

// RepositoryPort describes the remote API operations used by Service.
type RepositoryPort interface {
	ListBills(ctx context.Context, companyID int64) ([]Bill, error)
	GetBill(ctx context.Context, companyID, billID int64) (Bill, error)
	ListBillPayments(ctx context.Context, companyID, billID int64) ([]Payment, error)
	CreateBillPayment(ctx context.Context, companyID, billID int64, payment Payment) (Payment, error)

	ListInvoices(ctx context.Context, branchID int64) ([]Invoice, error)
	GetInvoice(ctx context.Context, branchID, invoiceID int64) (Invoice, error)
	ListInvoicePayments(ctx context.Context, branchID, invoiceID int64) ([]Payment, error)
	CreateInvoicePayment(ctx context.Context, branchID, invoiceID int64, payment Payment) (Payment, error)
}

// Repository fetches billing documents through the remote API.
type Repository struct {
	client *api.Client
}

// NewRepository constructs a Repository.
func NewRepository(client *api.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) ListBills(ctx context.Context, companyID int64) ([]Bill, error) {
	var out []Bill
	path := fmt.Sprintf("/api/companies/%d/bills/", companyID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) GetBill(ctx context.Context, companyID, billID int64) (Bill, error) {
	var out Bill
	path := fmt.Sprintf("/api/companies/%d/bills/%d/", companyID, billID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return Bill{}, err
	}
	return out, nil
}

func (r *Repository) ListBillPayments(ctx context.Context, companyID, billID int64) ([]Payment, error) {
	var out []Payment
	path := fmt.Sprintf("/api/companies/%d/bills/%d/payments/", companyID, billID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) CreateBillPayment(ctx context.Context, companyID, billID int64, payment Payment) (Payment, error) {
	var out Payment
	path := fmt.Sprintf("/api/companies/%d/bills/%d/payments/", companyID, billID)
	if err := r.client.Post(ctx, session.AccessToken(ctx), path, payment, &out); err != nil {
		return Payment{}, err
	}
	return out, nil
}

func (r *Repository) ListInvoices(ctx context.Context, branchID int64) ([]Invoice, error) {
	var out []Invoice
	path := fmt.Sprintf("/api/branches/%d/invoices/", branchID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) GetInvoice(ctx context.Context, branchID, invoiceID int64) (Invoice, error) {
	var out Invoice
	path := fmt.Sprintf("/api/branches/%d/invoices/%d/", branchID, invoiceID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return Invoice{}, err
	}
	return out, nil
}

func (r *Repository) ListInvoicePayments(ctx context.Context, branchID, invoiceID int64) ([]Payment, error) {
	var out []Payment
	path := fmt.Sprintf("/api/branches/%d/invoices/%d/payments/", branchID, invoiceID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) CreateInvoicePayment(ctx context.Context, branchID, invoiceID int64, payment Payment) (Payment, error) {
	var out Payment
	path := fmt.Sprintf("/api/branches/%d/invoices/%d/payments/", branchID, invoiceID)
	if err := r.client.Post(ctx, session.AccessToken(ctx), path, payment, &out); err != nil {
		return Payment{}, err
	}
	return out, nil
}
