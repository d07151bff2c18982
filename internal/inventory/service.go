package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/meridian-bms/meridian/internal/listing"
)

// Service lists stock positions and records movements.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
}

// NewService constructs the inventory service.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// MovementInput is the form payload for one stock movement.
type MovementInput struct {
	Type     MovementType
	Quantity int64
	Reason   string
}

// List fetches all stock positions for the branch, filtered in memory. The
// status filter accepts the pseudo-status "LOW" for positions at or below
// their reorder level.
func (s *Service) List(ctx context.Context, branchID int64, filters listing.Filters) ([]Inventory, error) {
	all, err := s.repo.List(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return listing.Apply(all, func(i Inventory) bool {
		if !filters.MatchesSearch(i.ProductName, i.SKU) {
			return false
		}
		if filters.Status == "LOW" {
			return i.LowStock()
		}
		return filters.Status == ""
	}), nil
}

// Get fetches one stock position with its audit trail, newest first as
// returned by the upstream API.
func (s *Service) Get(ctx context.Context, branchID, inventoryID int64) (Inventory, []Audit, error) {
	inv, err := s.repo.Get(ctx, branchID, inventoryID)
	if err != nil {
		return Inventory{}, nil, err
	}
	audits, err := s.repo.ListAudits(ctx, branchID, inventoryID)
	if err != nil {
		return Inventory{}, nil, err
	}
	for _, a := range audits {
		if a.NewQuantity != a.PreviousQuantity+a.Quantity {
			s.logger.Warn("inconsistent audit entry from upstream",
				slog.Int64("inventory_id", inventoryID),
				slog.Int64("audit_id", a.ID))
		}
	}
	return inv, audits, nil
}

// RecordMovement applies a stock movement against the current position and
// posts the resulting audit entry. The entry carries the before and after
// quantities so the upstream ledger stays self-checking.
func (s *Service) RecordMovement(ctx context.Context, branchID, inventoryID int64, input MovementInput, recordedBy string) (Audit, error) {
	inv, err := s.repo.Get(ctx, branchID, inventoryID)
	if err != nil {
		return Audit{}, err
	}
	quantity := input.Quantity
	switch input.Type {
	case MovementStockIn:
		if quantity < 0 {
			quantity = -quantity
		}
	case MovementStockOut:
		if quantity > 0 {
			quantity = -quantity
		}
	case MovementAdjustment:
		// signed as entered
	default:
		return Audit{}, fmt.Errorf("%w: unknown movement type %q", ErrValidation, input.Type)
	}
	audit := Audit{
		InventoryID:      inventoryID,
		Type:             input.Type,
		Quantity:         quantity,
		PreviousQuantity: inv.UnitsAvailable,
		NewQuantity:      inv.UnitsAvailable + quantity,
		Reason:           input.Reason,
		RecordedBy:       recordedBy,
	}
	if err := audit.Validate(); err != nil {
		return Audit{}, err
	}
	created, err := s.repo.CreateAudit(ctx, branchID, inventoryID, audit)
	if err != nil {
		return Audit{}, err
	}
	s.logger.Info("stock movement recorded",
		slog.Int64("inventory_id", inventoryID),
		slog.String("type", string(input.Type)),
		slog.String("delta", strconv.FormatInt(quantity, 10)),
		slog.Int64("new_quantity", audit.NewQuantity))
	return created, nil
}

// LowStockCount reports how many positions at the branch are at or below
// their reorder level.
func (s *Service) LowStockCount(ctx context.Context, branchID int64) (int, error) {
	all, err := s.repo.List(ctx, branchID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, inv := range all {
		if inv.LowStock() {
			count++
		}
	}
	return count, nil
}
