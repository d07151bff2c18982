// Package billing covers vendor bills, client invoices and their payments.
//
// Balance policy: the dashboard computes balance as amount due minus total
// paid and treats that as authoritative. A server-supplied balance field is
// only cross-checked; a mismatch is logged, never rendered.
package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus classifies a bill or invoice for display.
type DocumentStatus string

const (
	StatusPaid        DocumentStatus = "PAID"
	StatusPartial     DocumentStatus = "PARTIAL"
	StatusOverdue     DocumentStatus = "OVERDUE"
	StatusOutstanding DocumentStatus = "OUTSTANDING"
)

// Label maps every document status onto its badge.
func (s DocumentStatus) Label() (text, tone string) {
	switch s {
	case StatusPaid:
		return "Paid", "success"
	case StatusPartial:
		return "Partially Paid", "warning"
	case StatusOverdue:
		return "Overdue", "danger"
	case StatusOutstanding:
		return "Outstanding", "info"
	default:
		return "Unknown", "muted"
	}
}

// Bill is a vendor-side obligation referencing a purchase order.
type Bill struct {
	ID              int64            `json:"id"`
	CompanyID       int64            `json:"company_id"`
	PurchaseOrderID int64            `json:"purchase_order_id"`
	VendorID        int64            `json:"vendor_id"`
	VendorName      string           `json:"vendor_name"`
	Number          string           `json:"number"`
	AmountDue       decimal.Decimal  `json:"amount_due"`
	TotalPaid       decimal.Decimal  `json:"total_paid"`
	ServerBalance   *decimal.Decimal `json:"balance,omitempty"`
	DueDate         time.Time        `json:"due_date"`
	CreatedAt       time.Time        `json:"created_at"`
}

// Invoice is a client-side receivable referencing a sale order.
type Invoice struct {
	ID            int64            `json:"id"`
	BranchID      int64            `json:"branch_id"`
	SaleOrderID   int64            `json:"sale_order_id"`
	ClientID      int64            `json:"client_id"`
	ClientName    string           `json:"client_name"`
	Number        string           `json:"number"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	TotalPaid     decimal.Decimal  `json:"total_paid"`
	ServerBalance *decimal.Decimal `json:"balance,omitempty"`
	DueDate       time.Time        `json:"due_date"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Payment settles part of a bill or invoice.
type Payment struct {
	ID         int64           `json:"id"`
	DocumentID int64           `json:"document_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	PaidAt     time.Time       `json:"paid_at"`
	Note       string          `json:"note"`
}

// Balance is the outstanding amount, always computed client-side.
func (b Bill) Balance() decimal.Decimal {
	return b.AmountDue.Sub(b.TotalPaid)
}

// Balance is the outstanding amount, always computed client-side.
func (i Invoice) Balance() decimal.Decimal {
	return i.TotalAmount.Sub(i.TotalPaid)
}

// Classify maps due/paid amounts and the due date onto a document status.
func Classify(amountDue, totalPaid decimal.Decimal, dueDate, asOf time.Time) DocumentStatus {
	balance := amountDue.Sub(totalPaid)
	switch {
	case !balance.IsPositive():
		return StatusPaid
	case !dueDate.IsZero() && asOf.After(dueDate):
		return StatusOverdue
	case totalPaid.IsPositive():
		return StatusPartial
	default:
		return StatusOutstanding
	}
}

// Status classifies the bill as of now.
func (b Bill) Status(asOf time.Time) DocumentStatus {
	return Classify(b.AmountDue, b.TotalPaid, b.DueDate, asOf)
}

// Status classifies the invoice as of now.
func (i Invoice) Status(asOf time.Time) DocumentStatus {
	return Classify(i.TotalAmount, i.TotalPaid, i.DueDate, asOf)
}
