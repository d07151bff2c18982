package partners

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/masterdata/shared"
	"github.com/meridian-bms/meridian/internal/store"
)

// Service lists and mutates partner records through the remote API.
type Service struct {
	repo  Repository
	cache *store.LookupCache
}

// NewService constructs the partner service. The cache may be nil; when set,
// mutations invalidate the matching dropdown collection.
func NewService(repo Repository, cache *store.LookupCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List fetches all partners of the given kind and filters in memory.
func (s *Service) List(ctx context.Context, companyID int64, kind Kind, filters listing.Filters) ([]Partner, error) {
	var all []Partner
	var err error
	switch kind {
	case KindVendor:
		all, err = s.repo.ListVendors(ctx, companyID)
	case KindClient:
		all, err = s.repo.ListClients(ctx, companyID)
	default:
		return nil, fmt.Errorf("%w: unknown partner kind %q", shared.ErrValidation, kind)
	}
	if err != nil {
		return nil, err
	}
	return listing.Apply(all, func(p Partner) bool {
		return filters.MatchesSearch(p.Name, p.Email, p.Phone)
	}), nil
}

// Get fetches one partner.
func (s *Service) Get(ctx context.Context, companyID, id int64, kind Kind) (Partner, error) {
	if id <= 0 {
		return Partner{}, fmt.Errorf("%w: invalid partner id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, companyID, id, kind)
}

// Create validates and creates a partner of the given kind.
func (s *Service) Create(ctx context.Context, companyID int64, kind Kind, form PartnerForm) (Partner, error) {
	if err := validate(form); err != nil {
		return Partner{}, err
	}
	partner, err := s.repo.Create(ctx, companyID, fromForm(companyID, kind, form))
	if err != nil {
		return Partner{}, err
	}
	s.invalidate(ctx, companyID, kind)
	return partner, nil
}

// Update validates and updates a partner.
func (s *Service) Update(ctx context.Context, companyID, id int64, kind Kind, form PartnerForm) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid partner id", shared.ErrValidation)
	}
	if err := validate(form); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, companyID, id, fromForm(companyID, kind, form)); err != nil {
		return err
	}
	s.invalidate(ctx, companyID, kind)
	return nil
}

// Delete removes a partner.
func (s *Service) Delete(ctx context.Context, companyID, id int64, kind Kind) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid partner id", shared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, companyID, id, kind); err != nil {
		return err
	}
	s.invalidate(ctx, companyID, kind)
	return nil
}

func (s *Service) invalidate(ctx context.Context, companyID int64, kind Kind) {
	if s.cache == nil {
		return
	}
	key := store.VendorsKey(companyID)
	if kind == KindClient {
		key = store.ClientsKey(companyID)
	}
	_ = s.cache.Invalidate(ctx, key)
}

func fromForm(companyID int64, kind Kind, form PartnerForm) Partner {
	return Partner{
		CompanyID: companyID,
		Kind:      kind,
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Address:   form.Address,
	}
}
