package accounts

import (
	"context"
	"fmt"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/masterdata/shared"
)

// Service lists and mutates bank accounts through the remote API.
type Service struct {
	repo Repository
}

// NewService constructs the account service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List fetches all accounts for the company and filters in memory.
func (s *Service) List(ctx context.Context, companyID int64, filters listing.Filters) ([]Account, error) {
	all, err := s.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return listing.Apply(all, func(a Account) bool {
		return filters.MatchesSearch(a.BankName, a.Number, a.Currency)
	}), nil
}

// Get fetches one account.
func (s *Service) Get(ctx context.Context, companyID, id int64) (Account, error) {
	if id <= 0 {
		return Account{}, fmt.Errorf("%w: invalid account id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, companyID, id)
}

// Create validates and creates an account under the company.
func (s *Service) Create(ctx context.Context, companyID int64, form AccountForm) (Account, error) {
	if err := validate(form); err != nil {
		return Account{}, err
	}
	return s.repo.Create(ctx, companyID, fromForm(companyID, form))
}

// Update validates and updates an account.
func (s *Service) Update(ctx context.Context, companyID, id int64, form AccountForm) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid account id", shared.ErrValidation)
	}
	if err := validate(form); err != nil {
		return err
	}
	return s.repo.Update(ctx, companyID, id, fromForm(companyID, form))
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, companyID, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid account id", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, companyID, id)
}

func fromForm(companyID int64, form AccountForm) Account {
	return Account{
		CompanyID: companyID,
		BankName:  form.BankName,
		Number:    form.Number,
		Currency:  form.Currency,
	}
}
