package products

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/masterdata/shared"
	"github.com/meridian-bms/meridian/internal/store"
)

// Service lists and mutates product records through the remote API.
type Service struct {
	repo  Repository
	cache *store.LookupCache
}

// NewService constructs the product service. The cache may be nil; when set,
// mutations invalidate the branch's product dropdown collection.
func NewService(repo Repository, cache *store.LookupCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// List fetches all products for the branch and filters in memory. The
// status dropdown doubles as a category filter here.
func (s *Service) List(ctx context.Context, branchID int64, filters listing.Filters) ([]Product, error) {
	all, err := s.repo.List(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return listing.Apply(all, func(p Product) bool {
		return filters.MatchesSearch(p.Name, p.SKU, p.Category) &&
			filters.MatchesStatus(p.Category)
	}), nil
}

// Get fetches one product.
func (s *Service) Get(ctx context.Context, branchID, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, branchID, id)
}

// Create validates and creates a product under the branch.
func (s *Service) Create(ctx context.Context, branchID int64, form ProductForm) (Product, error) {
	product, err := fromForm(branchID, form)
	if err != nil {
		return Product{}, err
	}
	created, err := s.repo.Create(ctx, branchID, product)
	if err != nil {
		return Product{}, err
	}
	s.invalidate(ctx, branchID)
	return created, nil
}

// Update validates and updates a product.
func (s *Service) Update(ctx context.Context, branchID, id int64, form ProductForm) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	product, err := fromForm(branchID, form)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, branchID, id, product); err != nil {
		return err
	}
	s.invalidate(ctx, branchID)
	return nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, branchID, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	if err := s.repo.Delete(ctx, branchID, id); err != nil {
		return err
	}
	s.invalidate(ctx, branchID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, branchID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, store.ProductsKey(branchID))
}

func fromForm(branchID int64, form ProductForm) (Product, error) {
	if err := validate(form); err != nil {
		return Product{}, err
	}
	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		return Product{}, fmt.Errorf("%w: price must be a non-negative amount", shared.ErrValidation)
	}
	vat := decimal.Zero
	if form.VATRate != "" {
		vat, err = decimal.NewFromString(form.VATRate)
		if err != nil || vat.IsNegative() {
			return Product{}, fmt.Errorf("%w: vat rate must be a non-negative percentage", shared.ErrValidation)
		}
	}
	return Product{
		BranchID:   branchID,
		SKU:        form.SKU,
		Name:       form.Name,
		Category:   form.Category,
		Price:      price,
		VATRate:    vat,
		FixedPrice: form.FixedPrice,
	}, nil
}
