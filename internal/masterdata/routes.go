// Package masterdata mounts the resource packages under one route tree.
package masterdata

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-bms/meridian/internal/masterdata/accounts"
	"github.com/meridian-bms/meridian/internal/masterdata/branches"
	"github.com/meridian-bms/meridian/internal/masterdata/companies"
	"github.com/meridian-bms/meridian/internal/masterdata/partners"
	"github.com/meridian-bms/meridian/internal/masterdata/products"
	"github.com/meridian-bms/meridian/internal/masterdata/shared"
	"github.com/meridian-bms/meridian/internal/platform/api"
	"github.com/meridian-bms/meridian/internal/store"
)

// Handlers groups the per-resource handlers.
type Handlers struct {
	Companies *companies.Handler
	Branches  *branches.Handler
	Accounts  *accounts.Handler
	Partners  *partners.Handler
	Products  *products.Handler
}

// NewHandlers wires every resource package against the shared API client
// and page renderer. The lookup cache may be nil.
func NewHandlers(client *api.Client, page *shared.Page, cache *store.LookupCache) *Handlers {
	return &Handlers{
		Companies: companies.NewHandler(companies.NewService(companies.NewRepository(client), cache), page),
		Branches:  branches.NewHandler(branches.NewService(branches.NewRepository(client), cache), page),
		Accounts:  accounts.NewHandler(accounts.NewService(accounts.NewRepository(client)), page),
		Partners:  partners.NewHandler(partners.NewService(partners.NewRepository(client), cache), page),
		Products:  products.NewHandler(products.NewService(products.NewRepository(client), cache), page),
	}
}

// MountRoutes registers all master data routes.
func (h *Handlers) MountRoutes(r chi.Router) {
	r.Route("/companies", h.Companies.MountRoutes)
	r.Route("/branches", h.Branches.MountRoutes)
	r.Route("/accounts", h.Accounts.MountRoutes)
	r.Route("/partners", h.Partners.MountRoutes)
	r.Route("/products", h.Products.MountRoutes)
}
