package inventory

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-bms/meridian/internal/listing"
)

type memoryInventoryRepo struct {
	items  map[int64]Inventory
	audits map[int64][]Audit
	nextID int64
}

func newMemoryInventoryRepo() *memoryInventoryRepo {
	return &memoryInventoryRepo{
		items:  map[int64]Inventory{},
		audits: map[int64][]Audit{},
		nextID: 1,
	}
}

func (m *memoryInventoryRepo) List(ctx context.Context, branchID int64) ([]Inventory, error) {
	out := make([]Inventory, 0, len(m.items))
	for _, i := range m.items {
		out = append(out, i)
	}
	return out, nil
}

func (m *memoryInventoryRepo) Get(ctx context.Context, branchID, inventoryID int64) (Inventory, error) {
	return m.items[inventoryID], nil
}

func (m *memoryInventoryRepo) ListAudits(ctx context.Context, branchID, inventoryID int64) ([]Audit, error) {
	return m.audits[inventoryID], nil
}

func (m *memoryInventoryRepo) CreateAudit(ctx context.Context, branchID, inventoryID int64, audit Audit) (Audit, error) {
	audit.ID = m.nextID
	m.nextID++
	m.audits[inventoryID] = append(m.audits[inventoryID], audit)
	item := m.items[inventoryID]
	item.UnitsAvailable = audit.NewQuantity
	m.items[inventoryID] = item
	return audit, nil
}

func TestLowStockBoundary(t *testing.T) {
	assert.True(t, Inventory{UnitsAvailable: 5, ReorderLevel: 5}.LowStock(),
		"a position exactly at its reorder level is low")
	assert.True(t, Inventory{UnitsAvailable: 4, ReorderLevel: 5}.LowStock())
	assert.False(t, Inventory{UnitsAvailable: 6, ReorderLevel: 5}.LowStock())
}

func TestAuditValidateLedger(t *testing.T) {
	bad := Audit{Type: MovementStockIn, Quantity: 5, PreviousQuantity: 10, NewQuantity: 14}
	require.ErrorIs(t, bad.Validate(), ErrLedger)

	good := Audit{Type: MovementStockIn, Quantity: 5, PreviousQuantity: 10, NewQuantity: 15}
	require.NoError(t, good.Validate())
}

func TestRecordMovementNormalizesSign(t *testing.T) {
	repo := newMemoryInventoryRepo()
	repo.items[1] = Inventory{ID: 1, ProductName: "Widget", UnitsAvailable: 10, ReorderLevel: 3}
	svc := NewService(repo, slog.Default())

	audit, err := svc.RecordMovement(context.Background(), 1, 1,
		MovementInput{Type: MovementStockOut, Quantity: 4, Reason: "sale"}, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(-4), audit.Quantity, "stock out is stored negative")
	assert.Equal(t, int64(10), audit.PreviousQuantity)
	assert.Equal(t, int64(6), audit.NewQuantity)

	audit, err = svc.RecordMovement(context.Background(), 1, 1,
		MovementInput{Type: MovementStockIn, Quantity: 2}, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), audit.Quantity)
	assert.Equal(t, int64(8), audit.NewQuantity)
}

func TestRecordMovementRejectsOverdraw(t *testing.T) {
	repo := newMemoryInventoryRepo()
	repo.items[1] = Inventory{ID: 1, UnitsAvailable: 3}
	svc := NewService(repo, slog.Default())

	_, err := svc.RecordMovement(context.Background(), 1, 1,
		MovementInput{Type: MovementStockOut, Quantity: 5}, "")
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, repo.audits[1], "nothing recorded on rejection")
}

func TestRecordMovementRejectsUnknownType(t *testing.T) {
	repo := newMemoryInventoryRepo()
	repo.items[1] = Inventory{ID: 1, UnitsAvailable: 3}
	svc := NewService(repo, slog.Default())

	_, err := svc.RecordMovement(context.Background(), 1, 1,
		MovementInput{Type: "TRANSFER", Quantity: 1}, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestListLowFilter(t *testing.T) {
	repo := newMemoryInventoryRepo()
	repo.items[1] = Inventory{ID: 1, ProductName: "Widget", SKU: "W-1", UnitsAvailable: 2, ReorderLevel: 5}
	repo.items[2] = Inventory{ID: 2, ProductName: "Gadget", SKU: "G-1", UnitsAvailable: 20, ReorderLevel: 5}
	svc := NewService(repo, slog.Default())

	got, err := svc.List(context.Background(), 1, listing.Filters{Status: "LOW"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Widget", got[0].ProductName)

	got, err = svc.List(context.Background(), 1, listing.Filters{Search: "gad"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gadget", got[0].ProductName)

	count, err := svc.LowStockCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
