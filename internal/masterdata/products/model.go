// Package products manages the sellable items of a branch.
package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product belongs to a branch. Pricing is either fixed or negotiable at
// order time.
type Product struct {
	ID         int64           `json:"id"`
	BranchID   int64           `json:"branch_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	VATRate    decimal.Decimal `json:"vat_rate"`
	FixedPrice bool            `json:"fixed_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
