package products

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/session"
)

// Repository describes the remote API operations used by Service.
type Repository interface {
	List(ctx context.Context, branchID int64) ([]Product, error)
	Get(ctx context.Context, branchID, id int64) (Product, error)
	Create(ctx context.Context, branchID int64, product Product) (Product, error)
	Update(ctx context.Context, branchID, id int64, product Product) error
	Delete(ctx context.Context, branchID, id int64) error
}

type repository struct {
	client *api.Client
}

// NewRepository constructs an API-backed Repository.
func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) List(ctx context.Context, branchID int64) ([]Product, error) {
	var out []Product
	path := fmt.Sprintf("/api/branches/%d/products/", branchID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, branchID, id int64) (Product, error) {
	var out Product
	path := fmt.Sprintf("/api/branches/%d/products/%d/", branchID, id)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, branchID int64, product Product) (Product, error) {
	var out Product
	path := fmt.Sprintf("/api/branches/%d/products/", branchID)
	if err := r.client.Post(ctx, session.AccessToken(ctx), path, product, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, branchID, id int64, product Product) error {
	path := fmt.Sprintf("/api/branches/%d/products/%d/", branchID, id)
	return r.client.Put(ctx, session.AccessToken(ctx), path, product, nil)
}

func (r *repository) Delete(ctx context.Context, branchID, id int64) error {
	path := fmt.Sprintf("/api/branches/%d/products/%d/", branchID, id)
	return r.client.Delete(ctx, session.AccessToken(ctx), path)
}
