// Package partners manages the vendors and clients a company trades with.
package partners

import "time"

// Kind separates the two partner directions.
type Kind string

const (
	KindVendor Kind = "VENDOR"
	KindClient Kind = "CLIENT"
)

// Label maps every kind onto its badge.
func (k Kind) Label() (text, tone string) {
	switch k {
	case KindVendor:
		return "Vendor", "info"
	case KindClient:
		return "Client", "success"
	default:
		return "Unknown", "muted"
	}
}

// Partner is a counterparty: a vendor supplies purchase orders, a client
// receives sale orders.
type Partner struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
