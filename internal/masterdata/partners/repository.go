package partners

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/session"
)

// Repository describes the remote API operations used by Service.
//
// Vendors and clients live under different upstream path families. The
// client collection is served by the user service, not the companies API.
type Repository interface {
	ListVendors(ctx context.Context, companyID int64) ([]Partner, error)
	ListClients(ctx context.Context, companyID int64) ([]Partner, error)
	Get(ctx context.Context, companyID, id int64, kind Kind) (Partner, error)
	Create(ctx context.Context, companyID int64, partner Partner) (Partner, error)
	Update(ctx context.Context, companyID, id int64, partner Partner) error
	Delete(ctx context.Context, companyID, id int64, kind Kind) error
}

type repository struct {
	client *api.Client
}

// NewRepository constructs an API-backed Repository.
func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) ListVendors(ctx context.Context, companyID int64) ([]Partner, error) {
	var out []Partner
	path := fmt.Sprintf("/api/companies/%d/vendors/", companyID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Kind = KindVendor
	}
	return out, nil
}

func (r *repository) ListClients(ctx context.Context, companyID int64) ([]Partner, error) {
	var out []Partner
	path := fmt.Sprintf("/users/company/%d/clients/", companyID)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Kind = KindClient
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, companyID, id int64, kind Kind) (Partner, error) {
	var out Partner
	path := partnerPath(companyID, kind) + fmt.Sprintf("%d/", id)
	if err := r.client.Get(ctx, session.AccessToken(ctx), path, &out); err != nil {
		return Partner{}, err
	}
	out.Kind = kind
	return out, nil
}

func (r *repository) Create(ctx context.Context, companyID int64, partner Partner) (Partner, error) {
	var out Partner
	path := partnerPath(companyID, partner.Kind)
	if err := r.client.Post(ctx, session.AccessToken(ctx), path, partner, &out); err != nil {
		return Partner{}, err
	}
	out.Kind = partner.Kind
	return out, nil
}

func (r *repository) Update(ctx context.Context, companyID, id int64, partner Partner) error {
	path := partnerPath(companyID, partner.Kind) + fmt.Sprintf("%d/", id)
	return r.client.Put(ctx, session.AccessToken(ctx), path, partner, nil)
}

func (r *repository) Delete(ctx context.Context, companyID, id int64, kind Kind) error {
	path := partnerPath(companyID, kind) + fmt.Sprintf("%d/", id)
	return r.client.Delete(ctx, session.AccessToken(ctx), path)
}

func partnerPath(companyID int64, kind Kind) string {
	if kind == KindClient {
		return fmt.Sprintf("/users/company/%d/clients/", companyID)
	}
	return fmt.Sprintf("/api/companies/%d/vendors/", companyID)
}
