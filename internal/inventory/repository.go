package inventory

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/session"
)

// RepositoryPort describes the remote API operations used by Service.
type RepositoryPort interface {
	List(ctx context.Context, branchID int64) ([]Inventory, error)
	Get(ctx context.Context, branchID, inventoryID int64) (Inventory, error)
	ListAudits(ctx context.Context, branchID, inventoryID int64) ([]Audit, error)
	CreateAudit(ctx context.Context, branchID, inventoryID int64, audit Audit) (Audit, error)
}

// Repository fetches stock data through the remote API.
type Repository struct {
	client *api.Client
}

// NewRepository constructs a Repository.
func NewRepository(client *api.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) List(ctx context.Context, branchID int64) ([]Inventory, error) {
	var out []Inventory
	path := fmt.Sprintf("/api/branches/%d/inventories/", branchID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, branchID, inventoryID int64) (Inventory, error) {
	var out Inventory
	path := fmt.Sprintf("/api/branches/%d/inventories/%d/", branchID, inventoryID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return Inventory{}, err
	}
	return out, nil
}

func (r *Repository) ListAudits(ctx context.Context, branchID, inventoryID int64) ([]Audit, error) {
	var out []Audit
	path := fmt.Sprintf("/api/branches/%d/inventories/%d/audits/", branchID, inventoryID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) CreateAudit(ctx context.Context, branchID, inventoryID int64, audit Audit) (Audit, error) {
	var out Audit
	path := fmt.Sprintf("/api/branches/%d/inventories/%d/audits/", branchID, inventoryID)
	if err := r.client.Post(ctx, session.AccessToken(ctx), path, audit, &out); err != nil {
		return Audit{}, err
	}
	return out, nil
}
