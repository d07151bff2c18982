package accounts

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/session"
)

// Repository describes the remote API operations used by Service.
type Repository interface {
	List(ctx context.Context, companyID int64) ([]Account, error)
	Get(ctx context.Context, companyID, id int64) (Account, error)
	Create(ctx context.Context, companyID int64, account Account) (Account, error)
	Update(ctx context.Context, companyID, id int64, account Account) error
	Delete(ctx context.Context, companyID, id int64) error
}

type repository struct {
	client *api.Client
}

// NewRepository constructs an API-backed Repository.
func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) List(ctx context.Context, companyID int64) ([]Account, error) {
	var out []Account
	path := fmt.Sprintf("/api/companies/%d/accounts/", companyID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, companyID, id int64) (Account, error) {
	var out Account
	path := fmt.Sprintf("/api/companies/%d/accounts/%d/", companyID, id)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return Account{}, err
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, companyID int64, account Account) (Account, error) {
	var out Account
	path := fmt.Sprintf("/api/companies/%d/accounts/", companyID)
	if err := r.client.Post(ctx, session.AccessToken(ctx), path, account, &out); err != nil {
		return Account{}, err
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, companyID, id int64, account Account) error {
	path := fmt.Sprintf("/api/companies/%d/accounts/%d/", companyID, id)
	return r.client.Put(ctx, session.AccessToken(ctx), path, account, nil)
}

func (r *repository) Delete(ctx context.Context, companyID, id int64) error {
	path := fmt.Sprintf("/api/companies/%d/accounts/%d/", companyID, id)
	return r.client.Delete(ctx, session.AccessToken(ctx), path)
}
