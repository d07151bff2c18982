package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-bms/meridian/internal/listing"
)

// Service lists billing documents and records payments.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
}

// NewService constructs the billing service.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ErrValidation indicates invalid payment input.
var ErrValidation = fmt.Errorf("billing: invalid input")

// ListBills fetches all bills for the company and filters in memory. The
// status filter matches the derived classification, not a stored field.
func (s *Service) ListBills(ctx context.Context, companyID int64, filters listing.Filters) ([]Bill, error) {
	all, err := s.repo.ListBills(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, bill := range all {
		s.crossCheckBalance("bill", bill.Number, bill.Balance(), bill.ServerBalance)
	}
	return listing.Apply(all, func(b Bill) bool {
		return filters.MatchesSearch(b.Number, b.VendorName) &&
			filters.MatchesStatus(string(b.Status(now)))
	}), nil
}

// GetBill fetches one bill with its payments.
func (s *Service) GetBill(ctx context.Context, companyID, billID int64) (Bill, []Payment, error) {
	bill, err := s.repo.GetBill(ctx, companyID, billID)
	if err != nil {
		return Bill{}, nil, err
	}
	s.crossCheckBalance("bill", bill.Number, bill.Balance(), bill.ServerBalance)
	payments, err := s.repo.ListBillPayments(ctx, companyID, billID)
	if err != nil {
		return Bill{}, nil, err
	}
	return bill, payments, nil
}

// PayBill records a payment against a bill. The amount must be positive and
// may not exceed the outstanding balance.
func (s *Service) PayBill(ctx context.Context, companyID, billID int64, amount decimal.Decimal, method, note string) error {
	bill, err := s.repo.GetBill(ctx, companyID, billID)
	if err != nil {
		return err
	}
	if err := validateAmount(amount, bill.Balance()); err != nil {
		return err
	}
	_, err = s.repo.CreateBillPayment(ctx, companyID, billID, Payment{
		DocumentID: billID,
		Amount:     amount,
		Method:     method,
		PaidAt:     time.Now(),
		Note:       note,
	})
	return err
}

// ListInvoices fetches all invoices for the branch and filters in memory.
func (s *Service) ListInvoices(ctx context.Context, branchID int64, filters listing.Filters) ([]Invoice, error) {
	all, err := s.repo.ListInvoices(ctx, branchID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, inv := range all {
		s.crossCheckBalance("invoice", inv.Number, inv.Balance(), inv.ServerBalance)
	}
	return listing.Apply(all, func(i Invoice) bool {
		return filters.MatchesSearch(i.Number, i.ClientName) &&
			filters.MatchesStatus(string(i.Status(now)))
	}), nil
}

// GetInvoice fetches one invoice with its payments.
func (s *Service) GetInvoice(ctx context.Context, branchID, invoiceID int64) (Invoice, []Payment, error) {
	inv, err := s.repo.GetInvoice(ctx, branchID, invoiceID)
	if err != nil {
		return Invoice{}, nil, err
	}
	s.crossCheckBalance("invoice", inv.Number, inv.Balance(), inv.ServerBalance)
	payments, err := s.repo.ListInvoicePayments(ctx, branchID, invoiceID)
	if err != nil {
		return Invoice{}, nil, err
	}
	return inv, payments, nil
}

// PayInvoice records a payment against an invoice.
func (s *Service) PayInvoice(ctx context.Context, branchID, invoiceID int64, amount decimal.Decimal, method, note string) error {
	inv, err := s.repo.GetInvoice(ctx, branchID, invoiceID)
	if err != nil {
		return err
	}
	if err := validateAmount(amount, inv.Balance()); err != nil {
		return err
	}
	_, err = s.repo.CreateInvoicePayment(ctx, branchID, invoiceID, Payment{
		DocumentID: invoiceID,
		Amount:     amount,
		Method:     method,
		PaidAt:     time.Now(),
		Note:       note,
	})
	return err
}

func validateAmount(amount, balance decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	if amount.GreaterThan(balance) {
		return fmt.Errorf("%w: payment exceeds outstanding balance", ErrValidation)
	}
	return nil
}

// crossCheckBalance compares the computed balance against a server-supplied
// one when present. The computed value stays authoritative either way.
func (s *Service) crossCheckBalance(kind, number string, computed decimal.Decimal, server *decimal.Decimal) {
	if server == nil || s.logger == nil {
		return
	}
	if !computed.Equal(*server) {
		s.logger.Warn("balance mismatch against upstream",
			slog.String("kind", kind),
			slog.String("number", number),
			slog.String("computed", computed.String()),
			slog.String("server", server.String()))
	}
}
