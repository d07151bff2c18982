package branches

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/masterdata/shared"
	"github.com/meridian-bms/meridian/internal/store"
)

// Service lists and mutates branch records through the remote API.
type Service struct {
	repo  Repository
	cache *store.LookupCache
}

// NewService constructs the branch service. The cache may be nil; when set,
// mutations invalidate the cached branch dropdown of the company.
func NewService(repo Repository, cache *store.LookupCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List fetches all branches for the company and filters in memory.
func (s *Service) List(ctx context.Context, companyID int64, filters listing.Filters) ([]Branch, error) {
	all, err := s.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return listing.Apply(all, func(b Branch) bool {
		return filters.MatchesSearch(b.Name, b.Country, b.Currency) &&
			filters.MatchesStatus(string(b.Status))
	}), nil
}

// Get fetches one branch.
func (s *Service) Get(ctx context.Context, companyID, id int64) (Branch, error) {
	if id <= 0 {
		return Branch{}, fmt.Errorf("%w: invalid branch id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, companyID, id)
}

// Create validates and creates a branch under the company.
func (s *Service) Create(ctx context.Context, companyID int64, form BranchForm) (Branch, error) {
	if err := validate(form); err != nil {
		return Branch{}, err
	}
	branch, err := s.repo.Create(ctx, companyID, fromForm(companyID, form))
	if err != nil {
		return Branch{}, err
	}
	s.invalidate(ctx, companyID)
	return branch, nil
}

// Update validates and updates a branch.
func (s *Service) Update(ctx context.Context, companyID, id int64, form BranchForm) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid branch id", shared.ErrValidation)
	}
	if err := validate(form); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, companyID, id, fromForm(companyID, form)); err != nil {
		return err
	}
	s.invalidate(ctx, companyID)
	return nil
}

// Delete removes a branch.
func (s *Service) Delete(ctx context.Context, companyID, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid branch id", shared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	s.invalidate(ctx, companyID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, companyID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, store.BranchesKey(companyID))
}

func fromForm(companyID int64, form BranchForm) Branch {
	return Branch{
		CompanyID: companyID,
		Name:      form.Name,
		Country:   form.Country,
		Currency:  form.Currency,
		Status:    shared.RecordStatus(form.Status),
	}
}
