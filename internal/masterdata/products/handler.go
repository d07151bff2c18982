package products

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/masterdata/shared"
	internalshared "github.com/meridian-bms/meridian/internal/shared"
	"github.com/meridian-bms/meridian/internal/view"
)

// Handler serves the product pages for the selected branch.
type Handler struct {
	service *Service
	page    *shared.Page
}

// NewHandler builds Handler instance.
func NewHandler(service *Service, page *shared.Page) *Handler {
	return &Handler{service: service, page: page}
}

// MountRoutes registers product routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/new", h.form)
	r.Get("/{id}", h.edit)
	r.Post("/", h.create)
	r.Post("/{id}", h.update)
	r.Post("/{id}/delete", h.delete)
}

func (h *Handler) branchOrRedirect(w http.ResponseWriter, r *http.Request) (int64, bool) {
	branchID := h.page.SelectedBranch(r)
	if branchID == 0 {
		h.page.RedirectWithFlash(w, r, "/", "error", "Select a branch first")
		return 0, false
	}
	return branchID, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	branchID, ok := h.branchOrRedirect(w, r)
	if !ok {
		return
	}
	filters := listing.FromQuery(r.URL.Query().Get("search"), r.URL.Query().Get("category"))
	items, err := h.service.List(r.Context(), branchID, filters)
	if err != nil {
		h.page.Logger.Error("list products", slog.Any("error", err))
		h.page.RedirectWithFlash(w, r, "/", "error", internalshared.UserSafeMessage(err))
		return
	}
	table := view.Table{
		Columns: []view.Column{
			{Key: "name", Label: "Name"},
			{Key: "sku", Label: "SKU"},
			{Key: "category", Label: "Category"},
			{Key: "price", Label: "Price", Align: "right"},
			{Key: "vat", Label: "VAT %", Align: "right"},
			{Key: "pricing", Label: "Pricing"},
		},
		Empty: "No products at this branch",
	}
	for _, p := range items {
		pricing := view.BadgeCell("Negotiable", "warning")
		if p.FixedPrice {
			pricing = view.BadgeCell("Fixed", "info")
		}
		table.Rows = append(table.Rows, view.Row{
			"name":     view.LinkCell(p.Name, "/masterdata/products/"+strconv.FormatInt(p.ID, 10)),
			"sku":      view.TextCell(p.SKU),
			"category": view.TextCell(p.Category),
			"price":    view.TextCell(p.Price.StringFixed(2)),
			"vat":      view.TextCell(p.VATRate.String()),
			"pricing":  pricing,
		})
	}
	h.page.Render(w, r, "Products", "pages/masterdata/products_list.html", map[string]any{
		"Table":   table,
		"Filters": filters,
	}, http.StatusOK)
}

func (h *Handler) form(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.branchOrRedirect(w, r); !ok {
		return
	}
	h.page.Render(w, r, "New Product", "pages/masterdata/product_form.html", map[string]any{
		"Form":   ProductForm{FixedPrice: true},
		"Errors": map[string]string{},
	}, http.StatusOK)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	branchID, ok := h.branchOrRedirect(w, r)
	if !ok {
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	product, err := h.service.Get(r.Context(), branchID, id)
	if err != nil {
		h.page.Logger.Error("load product", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, "/masterdata/products", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.Render(w, r, "Edit Product", "pages/masterdata/product_form.html", map[string]any{
		"ID": product.ID,
		"Form": ProductForm{
			SKU:        product.SKU,
			Name:       product.Name,
			Category:   product.Category,
			Price:      product.Price.String(),
			VATRate:    product.VATRate.String(),
			FixedPrice: product.FixedPrice,
		},
		"Errors": map[string]string{},
	}, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, 0)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	h.submit(w, r, id)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, id int64) {
	branchID, ok := h.branchOrRedirect(w, r)
	if !ok {
		return
	}
	form := ProductForm{
		SKU:        r.PostFormValue("sku"),
		Name:       r.PostFormValue("name"),
		Category:   r.PostFormValue("category"),
		Price:      r.PostFormValue("price"),
		VATRate:    r.PostFormValue("vat_rate"),
		FixedPrice: r.PostFormValue("fixed_price") == "on",
	}
	if errs := FieldErrors(form); len(errs) > 0 {
		h.page.Render(w, r, "Product", "pages/masterdata/product_form.html", map[string]any{
			"ID": id, "Form": form, "Errors": errs,
		}, http.StatusBadRequest)
		return
	}
	var err error
	if id == 0 {
		_, err = h.service.Create(r.Context(), branchID, form)
	} else {
		err = h.service.Update(r.Context(), branchID, id, form)
	}
	if err != nil {
		h.page.Logger.Error("save product", slog.Any("error", err))
		h.page.RedirectWithFlash(w, r, "/masterdata/products", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.RedirectWithFlash(w, r, "/masterdata/products", "success", "Product saved")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	branchID, ok := h.branchOrRedirect(w, r)
	if !ok {
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err := h.service.Delete(r.Context(), branchID, id); err != nil {
		h.page.Logger.Error("delete product", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, "/masterdata/products", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.RedirectWithFlash(w, r, "/masterdata/products", "success", "Product deleted")
}
