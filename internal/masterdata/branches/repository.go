package branches

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/session"
)

// Repository describes the remote API operations used by Service.
type Repository interface {
	List(ctx context.Context, companyID int64) ([]Branch, error)
	Get(ctx context.Context, companyID, id int64) (Branch, error)
	Create(ctx context.Context, companyID int64, branch Branch) (Branch, error)
	Update(ctx context.Context, companyID, id int64, branch Branch) error
	Delete(ctx context.Context, companyID, id int64) error
}

type repository struct {
	client *api.Client
}

// NewRepository constructs an API-backed Repository.
func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) List(ctx context.Context, companyID int64) ([]Branch, error) {
	var out []Branch
	path := fmt.Sprintf("/api/companies/%d/branches/", companyID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, companyID, id int64) (Branch, error) {
	var out Branch
	path := fmt.Sprintf("/api/companies/%d/branches/%d/", companyID, id)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return Branch{}, err
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, companyID int64, branch Branch) (Branch, error) {
	var out Branch
	path := fmt.Sprintf("/api/companies/%d/branches/", companyID)
	if err := r.client.Post(ctx, session.AccessToken(ctx), path, branch, &out); err != nil {
		return Branch{}, err
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, companyID, id int64, branch Branch) error {
	path := fmt.Sprintf("/api/companies/%d/branches/%d/", companyID, id)
	return r.client.Put(ctx, session.AccessToken(ctx), path, branch, nil)
}

func (r *repository) Delete(ctx context.Context, companyID, id int64) error {
	path := fmt.Sprintf("/api/companies/%d/branches/%d/", companyID, id)
	return r.client.Delete(ctx, session.AccessToken(ctx), path)
}
