package companies

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/masterdata/shared"
	"github.com/meridian-bms/meridian/internal/store"
)

// Service lists and mutates company records through the remote API.
type Service struct {
	repo  Repository
	cache *store.LookupCache
}

// NewService constructs the company service. The cache may be nil; when set,
// mutations invalidate the cached company dropdown.
func NewService(repo Repository, cache *store.LookupCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List fetches all companies and filters in memory.
func (s *Service) List(ctx context.Context, filters listing.Filters) ([]Company, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return listing.Apply(all, func(c Company) bool {
		return filters.MatchesSearch(c.Name, c.Registration) &&
			filters.MatchesStatus(string(c.Status))
	}), nil
}

// Get fetches one company.
func (s *Service) Get(ctx context.Context, id int64) (Company, error) {
	if id <= 0 {
		return Company{}, fmt.Errorf("%w: invalid company id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

// Create validates and creates a company.
func (s *Service) Create(ctx context.Context, form CompanyForm) (Company, error) {
	if err := validate(form); err != nil {
		return Company{}, err
	}
	company, err := s.repo.Create(ctx, fromForm(form))
	if err != nil {
		return Company{}, err
	}
	s.invalidate(ctx)
	return company, nil
}

// Update validates and updates a company.
func (s *Service) Update(ctx context.Context, id int64, form CompanyForm) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid company id", shared.ErrValidation)
	}
	if err := validate(form); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, fromForm(form)); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a company.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid company id", shared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, store.CompaniesKey())
}

func fromForm(form CompanyForm) Company {
	return Company{
		Name:         form.Name,
		Registration: form.Registration,
		Status:       shared.RecordStatus(form.Status),
	}
}
