package companies

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"log/slog"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/masterdata/shared"
	internalshared "github.com/meridian-bms/meridian/internal/shared"
	"github.com/meridian-bms/meridian/internal/view"
)

// Handler serves the company pages.
type Handler struct {
	service *Service
	page    *shared.Page
}

// NewHandler builds Handler instance.
func NewHandler(service *Service, page *shared.Page) *Handler {
	return &Handler{service: service, page: page}
}

// MountRoutes registers company routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/new", h.form)
	r.Get("/{id}", h.edit)
	r.Post("/", h.create)
	r.Post("/{id}", h.update)
	r.Post("/{id}/delete", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := listing.FromQuery(r.URL.Query().Get("search"), r.URL.Query().Get("status"))
	items, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.page.Logger.Error("list companies", slog.Any("error", err))
		h.page.RedirectWithFlash(w, r, "/", "error", internalshared.UserSafeMessage(err))
		return
	}
	table := view.Table{
		Columns: []view.Column{
			{Key: "name", Label: "Name"},
			{Key: "registration", Label: "Registration"},
			{Key: "status", Label: "Status"},
		},
		Empty: "No companies yet",
	}
	for _, c := range items {
		text, tone := c.Status.Label()
		table.Rows = append(table.Rows, view.Row{
			"name":         view.LinkCell(c.Name, "/masterdata/companies/"+strconv.FormatInt(c.ID, 10)),
			"registration": view.TextCell(c.Registration),
			"status":       view.BadgeCell(text, tone),
		})
	}
	h.page.Render(w, r, "Companies", "pages/masterdata/companies_list.html", map[string]any{
		"Table":   table,
		"Filters": filters,
	}, http.StatusOK)
}

func (h *Handler) form(w http.ResponseWriter, r *http.Request) {
	h.page.Render(w, r, "New Company", "pages/masterdata/company_form.html", map[string]any{
		"Form":   CompanyForm{Status: string(shared.StatusActive)},
		"Errors": map[string]string{},
	}, http.StatusOK)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	company, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.page.Logger.Error("load company", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, "/masterdata/companies", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.Render(w, r, "Edit Company", "pages/masterdata/company_form.html", map[string]any{
		"ID": company.ID,
		"Form": CompanyForm{
			Name:         company.Name,
			Registration: company.Registration,
			Status:       string(company.Status),
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
	form := CompanyForm{
		Name:         r.PostFormValue("name"),
		Registration: r.PostFormValue("registration"),
		Status:       r.PostFormValue("status"),
	}
	if errs := FieldErrors(form); len(errs) > 0 {
		h.page.Render(w, r, "Company", "pages/masterdata/company_form.html", map[string]any{
			"ID": id, "Form": form, "Errors": errs,
		}, http.StatusBadRequest)
		return
	}
	var err error
	if id == 0 {
		_, err = h.service.Create(r.Context(), form)
	} else {
		err = h.service.Update(r.Context(), id, form)
	}
	if err != nil {
		h.page.Logger.Error("save company", slog.Any("error", err))
		h.page.RedirectWithFlash(w, r, "/masterdata/companies", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.RedirectWithFlash(w, r, "/masterdata/companies", "success", "Company saved")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.page.Logger.Error("delete company", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, "/masterdata/companies", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.RedirectWithFlash(w, r, "/masterdata/companies", "success", "Company deleted")
}
