package companies

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/session"
)

// Repository describes the remote API operations used by Service.
type Repository interface {
	List(ctx context.Context) ([]Company, error)
	Get(ctx context.Context, id int64) (Company, error)
	Create(ctx context.Context, company Company) (Company, error)
	Update(ctx context.Context, id int64, company Company) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	client *api.Client
}

// NewRepository constructs an API-backed Repository.
func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) List(ctx context.Context) ([]Company, error) {
	var out []Company
	if err := r.client.Get(ctx, session.AccessToken(ctx), "/api/companies/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Company, error) {
	var out Company
	path := fmt.Sprintf("/api/companies/%d/", id)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return Company{}, err
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, company Company) (Company, error) {
	var out Company
	if err := r.client.Post(ctx, session.AccessToken(ctx), "/api/companies/", company, &out); err != nil {
		return Company{}, err
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, id int64, company Company) error {
	path := fmt.Sprintf("/api/companies/%d/", id)
	return r.client.Put(ctx, session.AccessToken(ctx), path, company, nil)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/companies/%d/", id)
	return r.client.Delete(ctx, session.AccessToken(ctx), path)
}
