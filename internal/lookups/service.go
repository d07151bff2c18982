// Package lookups serves cached dropdown collections for form pages.
package lookups

import (
	"context"

	"github.com/meridian-bms/meridian/internal/masterdata/branches"
	"github.com/meridian-bms/meridian/internal/masterdata/companies"
	"github.com/meridian-bms/meridian/internal/masterdata/partners"
	"github.com/meridian-bms/meridian/internal/masterdata/products"
	"github.com/meridian-bms/meridian/internal/store"
)

// Option is one selectable entry in a form dropdown.
type Option struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Service resolves dropdown collections through the lookup cache, scoped to
// the caller's company or branch.
type Service struct {
	cache     *store.LookupCache
	companies companies.Repository
	branches  branches.Repository
	partners  partners.Repository
	products  products.Repository
}

// NewService builds Service instance.
func NewService(cache *store.LookupCache, companyRepo companies.Repository, branchRepo branches.Repository, partnerRepo partners.Repository, productRepo products.Repository) *Service {
	return &Service{cache: cache, companies: companyRepo, branches: branchRepo, partners: partnerRepo, products: productRepo}
}

// Companies returns options for every registered company.
func (s *Service) Companies(ctx context.Context) ([]Option, error) {
	var options []Option
	err := s.cache.FetchJSON(ctx, store.CompaniesKey(), &options, func(ctx context.Context) (any, error) {
		items, err := s.companies.List(ctx)
		if err != nil {
			return nil, err
		}
		return CompanyOptions(items), nil
	})
	return options, err
}

// CompanyName resolves a company id to its display name, or "" when unknown.
func (s *Service) CompanyName(ctx context.Context, companyID int64) (string, error) {
	options, err := s.Companies(ctx)
	if err != nil {
		return "", err
	}
	for _, o := range options {
		if o.ID == companyID {
			return o.Label, nil
		}
	}
	return "", nil
}

// Branches returns branch options for the company.
func (s *Service) Branches(ctx context.Context, companyID int64) ([]Option, error) {
	var options []Option
	key := store.BranchesKey(companyID)
	err := s.cache.FetchJSON(ctx, key, &options, func(ctx context.Context) (any, error) {
		items, err := s.branches.List(ctx, companyID)
		if err != nil {
			return nil, err
		}
		opts := make([]Option, 0, len(items))
		for _, b := range items {
			opts = append(opts, Option{ID: b.ID, Label: b.Name})
		}
		return opts, nil
	})
	return options, err
}

// Vendors returns vendor options for the company.
func (s *Service) Vendors(ctx context.Context, companyID int64) ([]Option, error) {
	var options []Option
	key := store.VendorsKey(companyID)
	err := s.cache.FetchJSON(ctx, key, &options, func(ctx context.Context) (any, error) {
		items, err := s.partners.ListVendors(ctx, companyID)
		if err != nil {
			return nil, err
		}
		return partnerOptions(items), nil
	})
	return options, err
}

// Clients returns client options for the company.
func (s *Service) Clients(ctx context.Context, companyID int64) ([]Option, error) {
	var options []Option
	key := store.ClientsKey(companyID)
	err := s.cache.FetchJSON(ctx, key, &options, func(ctx context.Context) (any, error) {
		items, err := s.partners.ListClients(ctx, companyID)
		if err != nil {
			return nil, err
		}
		return partnerOptions(items), nil
	})
	return options, err
}

// Products returns product options for the branch, labelled "SKU - Name".
func (s *Service) Products(ctx context.Context, branchID int64) ([]Option, error) {
	var options []Option
	key := store.ProductsKey(branchID)
	err := s.cache.FetchJSON(ctx, key, &options, func(ctx context.Context) (any, error) {
		items, err := s.products.List(ctx, branchID)
		if err != nil {
			return nil, err
		}
		opts := make([]Option, 0, len(items))
		for _, p := range items {
			opts = append(opts, Option{ID: p.ID, Label: p.SKU + " - " + p.Name})
		}
		return opts, nil
	})
	return options, err
}

// CompanyOptions maps company records to dropdown options. The background
// refresh job uses it so the warmed payload matches what readers unmarshal.
func CompanyOptions(items []companies.Company) []Option {
	opts := make([]Option, 0, len(items))
	for _, c := range items {
		opts = append(opts, Option{ID: c.ID, Label: c.Name})
	}
	return opts
}

func partnerOptions(items []partners.Partner) []Option {
	opts := make([]Option, 0, len(items))
	for _, p := range items {
		opts = append(opts, Option{ID: p.ID, Label: p.Name})
	}
	return opts
}
