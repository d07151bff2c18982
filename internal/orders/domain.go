// Package orders covers the three order flows: purchase orders against
// vendors, sale orders against clients, and requisition orders moving stock
// between branches. All three share the line-item core: derived totals and
// fulfillment rates are computed, never stored.
package orders

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order lifecycle statuses.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "PENDING"
	PurchaseApproved  PurchaseStatus = "APPROVED"
	PurchaseDelivered PurchaseStatus = "DELIVERED"
	PurchaseCancelled PurchaseStatus = "CANCELLED"
)

// Sale order lifecycle statuses.
type SaleStatus string

const (
	SalePending   SaleStatus = "PENDING"
	SaleConfirmed SaleStatus = "CONFIRMED"
	SaleFulfilled SaleStatus = "FULFILLED"
	SaleCancelled SaleStatus = "CANCELLED"
)

// Requisition order lifecycle statuses.
type RequisitionStatus string

const (
	RequisitionPending   RequisitionStatus = "PENDING"
	RequisitionApproved  RequisitionStatus = "APPROVED"
	RequisitionInTransit RequisitionStatus = "IN_TRANSIT"
	RequisitionFulfilled RequisitionStatus = "FULFILLED"
	RequisitionRejected  RequisitionStatus = "REJECTED"
)

// StatusLabel is what list pages and badges render for a status. Unknown
// strings coming back from the API map to an explicit unknown label instead
// of being echoed raw.
type StatusLabel struct {
	Text string
	Tone string
}

var unknownStatus = StatusLabel{Text: "Unknown", Tone: "muted"}

// Label maps every purchase status onto its badge.
func (s PurchaseStatus) Label() StatusLabel {
	switch s {
	case PurchasePending:
		return StatusLabel{Text: "Pending", Tone: "warning"}
	case PurchaseApproved:
		return StatusLabel{Text: "Approved", Tone: "info"}
	case PurchaseDelivered:
		return StatusLabel{Text: "Delivered", Tone: "success"}
	case PurchaseCancelled:
		return StatusLabel{Text: "Cancelled", Tone: "danger"}
	default:
		return unknownStatus
	}
}

// Label maps every sale status onto its badge.
func (s SaleStatus) Label() StatusLabel {
	switch s {
	case SalePending:
		return StatusLabel{Text: "Pending", Tone: "warning"}
	case SaleConfirmed:
		return StatusLabel{Text: "Confirmed", Tone: "info"}
	case SaleFulfilled:
		return StatusLabel{Text: "Fulfilled", Tone: "success"}
	case SaleCancelled:
		return StatusLabel{Text: "Cancelled", Tone: "danger"}
	default:
		return unknownStatus
	}
}

// Label maps every requisition status onto its badge.
func (s RequisitionStatus) Label() StatusLabel {
	switch s {
	case RequisitionPending:
		return StatusLabel{Text: "Pending", Tone: "warning"}
	case RequisitionApproved:
		return StatusLabel{Text: "Approved", Tone: "info"}
	case RequisitionInTransit:
		return StatusLabel{Text: "In Transit", Tone: "info"}
	case RequisitionFulfilled:
		return StatusLabel{Text: "Fulfilled", Tone: "success"}
	case RequisitionRejected:
		return StatusLabel{Text: "Rejected", Tone: "danger"}
	default:
		return unknownStatus
	}
}

// PurchaseItem is one line of a purchase order.
type PurchaseItem struct {
	ID                int64           `json:"id"`
	ProductID         int64           `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Quantity          decimal.Decimal `json:"quantity"`
	DeliveredQuantity decimal.Decimal `json:"delivered_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

// PurchaseOrder is a vendor-facing order.
type PurchaseOrder struct {
	ID           int64          `json:"id"`
	CompanyID    int64          `json:"company_id"`
	VendorID     int64          `json:"vendor_id"`
	VendorName   string         `json:"vendor_name"`
	Number       string         `json:"number"`
	Status       PurchaseStatus `json:"status"`
	OrderDate    time.Time      `json:"order_date"`
	ExpectedDate time.Time      `json:"expected_date"`
	Note         string         `json:"note"`
	Items        []PurchaseItem `json:"items"`
}

// SaleItem is one line of a sale order.
type SaleItem struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// SaleOrder is a client-facing order placed against a branch.
type SaleOrder struct {
	ID         int64      `json:"id"`
	BranchID   int64      `json:"branch_id"`
	ClientID   int64      `json:"client_id"`
	ClientName string     `json:"client_name"`
	Number     string     `json:"number"`
	Status     SaleStatus `json:"status"`
	OrderDate  time.Time  `json:"order_date"`
	Note       string     `json:"note"`
	Items      []SaleItem `json:"items"`
}

// RequisitionItem is one line of an internal stock-transfer request.
type RequisitionItem struct {
	ID                int64           `json:"id"`
	ProductID         int64           `json:"product_id"`
	ProductName       string          `json:"product_name"`
	OrderQuantity     decimal.Decimal `json:"order_quantity"`
	QuantityFulfilled decimal.Decimal `json:"quantity_fulfilled"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

// RequisitionOrder moves stock between two branches.
type RequisitionOrder struct {
	ID                  int64             `json:"id"`
	SourceBranchID      int64             `json:"source_branch_id"`
	DestinationBranchID int64             `json:"destination_branch_id"`
	Number              string            `json:"number"`
	Status              RequisitionStatus `json:"status"`
	RequestDate         time.Time         `json:"request_date"`
	Note                string            `json:"note"`
	Items               []RequisitionItem `json:"items"`
}

var (
	// ErrValidation indicates invalid order input.
	ErrValidation = errors.New("orders: invalid input")
	// ErrQuantityBounds occurs when a fulfillment edit violates line bounds.
	ErrQuantityBounds = errors.New("orders: quantity outside allowed bounds")
)
