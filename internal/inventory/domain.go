// Package inventory tracks branch stock levels and their movement history.
package inventory

import (
	"fmt"
	"time"
)

// MovementType classifies an inventory audit entry.
type MovementType string

const (
	MovementStockIn    MovementType = "STOCK_IN"
	MovementStockOut   MovementType = "STOCK_OUT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// Label maps every movement type onto its badge.
func (m MovementType) Label() (text, tone string) {
	switch m {
	case MovementStockIn:
		return "Stock In", "success"
	case MovementStockOut:
		return "Stock Out", "danger"
	case MovementAdjustment:
		return "Adjustment", "warning"
	default:
		return "Unknown", "muted"
	}
}

// Inventory is one product's stock position at a branch.
type Inventory struct {
	ID             int64     `json:"id"`
	BranchID       int64     `json:"branch_id"`
	ProductID      int64     `json:"product_id"`
	ProductName    string    `json:"product_name"`
	SKU            string    `json:"sku"`
	UnitsAvailable int64     `json:"units_available"`
	ReorderLevel   int64     `json:"reorder_level"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LowStock reports whether the position has fallen to its reorder level.
func (i Inventory) LowStock() bool {
	return i.UnitsAvailable <= i.ReorderLevel
}

// Audit is one recorded stock movement. Quantity is signed: stock out
// carries a negative quantity, adjustments carry either sign.
type Audit struct {
	ID               int64        `json:"id"`
	InventoryID      int64        `json:"inventory_id"`
	Type             MovementType `json:"type"`
	Quantity         int64        `json:"quantity"`
	PreviousQuantity int64        `json:"previous_quantity"`
	NewQuantity      int64        `json:"new_quantity"`
	Reason           string       `json:"reason"`
	RecordedBy       string       `json:"recorded_by"`
	CreatedAt        time.Time    `json:"created_at"`
}

// Validate checks the audit ledger arithmetic and the sign convention for
// the movement type.
func (a Audit) Validate() error {
	if a.NewQuantity != a.PreviousQuantity+a.Quantity {
		return fmt.Errorf("%w: new quantity %d does not equal previous %d plus delta %d",
			ErrLedger, a.NewQuantity, a.PreviousQuantity, a.Quantity)
	}
	switch a.Type {
	case MovementStockIn:
		if a.Quantity <= 0 {
			return fmt.Errorf("%w: stock in requires a positive quantity", ErrValidation)
		}
	case MovementStockOut:
		if a.Quantity >= 0 {
			return fmt.Errorf("%w: stock out requires a negative quantity", ErrValidation)
		}
	case MovementAdjustment:
		if a.Quantity == 0 {
			return fmt.Errorf("%w: adjustment requires a non-zero quantity", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown movement type %q", ErrValidation, a.Type)
	}
	if a.NewQuantity < 0 {
		return fmt.Errorf("%w: movement would drive stock below zero", ErrValidation)
	}
	return nil
}

var (
	// ErrValidation indicates invalid movement input.
	ErrValidation = fmt.Errorf("inventory: invalid input")
	// ErrLedger indicates an audit entry whose arithmetic does not add up.
	ErrLedger = fmt.Errorf("inventory: inconsistent audit entry")
)
