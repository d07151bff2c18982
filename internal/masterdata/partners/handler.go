package partners

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/masterdata/shared"
	internalshared "github.com/meridian-bms/meridian/internal/shared"
	"github.com/meridian-bms/meridian/internal/view"
)

// Handler serves the vendor and client pages. Both kinds share the same
// routes under a {kind} prefix ("vendors" or "clients").
type Handler struct {
	service *Service
	page    *shared.Page
}

// NewHandler builds Handler instance.
func NewHandler(service *Service, page *shared.Page) *Handler {
	return &Handler{service: service, page: page}
}

// MountRoutes registers partner routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/{kind}", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/new", h.form)
		r.Get("/{id}", h.edit)
		r.Post("/", h.create)
		r.Post("/{id}", h.update)
		r.Post("/{id}/delete", h.delete)
	})
}

func kindFromPath(r *http.Request) (Kind, bool) {
	switch strings.ToLower(chi.URLParam(r, "kind")) {
	case "vendors":
		return KindVendor, true
	case "clients":
		return KindClient, true
	default:
		return "", false
	}
}

func basePath(kind Kind) string {
	if kind == KindClient {
		return "/masterdata/partners/clients"
	}
	return "/masterdata/partners/vendors"
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	kind, ok := kindFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	filters := listing.FromQuery(r.URL.Query().Get("search"), "")
	items, err := h.service.List(r.Context(), user.CompanyID, kind, filters)
	if err != nil {
		h.page.Logger.Error("list partners", slog.Any("error", err), slog.String("kind", string(kind)))
		h.page.RedirectWithFlash(w, r, "/", "error", internalshared.UserSafeMessage(err))
		return
	}
	title, _ := kind.Label()
	table := view.Table{
		Columns: []view.Column{
			{Key: "name", Label: "Name"},
			{Key: "email", Label: "Email"},
			{Key: "phone", Label: "Phone"},
		},
		Empty: "No " + strings.ToLower(title) + "s yet",
	}
	for _, p := range items {
		table.Rows = append(table.Rows, view.Row{
			"name":  view.LinkCell(p.Name, basePath(kind)+"/"+strconv.FormatInt(p.ID, 10)),
			"email": view.TextCell(p.Email),
			"phone": view.TextCell(p.Phone),
		})
	}
	h.page.Render(w, r, title+"s", "pages/masterdata/partners_list.html", map[string]any{
		"Table":   table,
		"Filters": filters,
		"Kind":    kind,
		"Base":    basePath(kind),
	}, http.StatusOK)
}

func (h *Handler) form(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	title, _ := kind.Label()
	h.page.Render(w, r, "New "+title, "pages/masterdata/partner_form.html", map[string]any{
		"Form":   PartnerForm{},
		"Errors": map[string]string{},
		"Kind":   kind,
		"Base":   basePath(kind),
	}, http.StatusOK)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	kind, ok := kindFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	partner, err := h.service.Get(r.Context(), user.CompanyID, id, kind)
	if err != nil {
		h.page.Logger.Error("load partner", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, basePath(kind), "error", internalshared.UserSafeMessage(err))
		return
	}
	title, _ := kind.Label()
	h.page.Render(w, r, "Edit "+title, "pages/masterdata/partner_form.html", map[string]any{
		"ID": partner.ID,
		"Form": PartnerForm{
			Name:    partner.Name,
			Email:   partner.Email,
			Phone:   partner.Phone,
			Address: partner.Address,
		},
		"Errors": map[string]string{},
		"Kind":   kind,
		"Base":   basePath(kind),
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
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	kind, ok := kindFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	form := PartnerForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Address: r.PostFormValue("address"),
	}
	if errs := FieldErrors(form); len(errs) > 0 {
		title, _ := kind.Label()
		h.page.Render(w, r, title, "pages/masterdata/partner_form.html", map[string]any{
			"ID": id, "Form": form, "Errors": errs, "Kind": kind, "Base": basePath(kind),
		}, http.StatusBadRequest)
		return
	}
	var err error
	if id == 0 {
		_, err = h.service.Create(r.Context(), user.CompanyID, kind, form)
	} else {
		err = h.service.Update(r.Context(), user.CompanyID, id, kind, form)
	}
	if err != nil {
		h.page.Logger.Error("save partner", slog.Any("error", err))
		h.page.RedirectWithFlash(w, r, basePath(kind), "error", internalshared.UserSafeMessage(err))
		return
	}
	title, _ := kind.Label()
	h.page.RedirectWithFlash(w, r, basePath(kind), "success", title+" saved")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	kind, ok := kindFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err := h.service.Delete(r.Context(), user.CompanyID, id, kind); err != nil {
		h.page.Logger.Error("delete partner", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, basePath(kind), "error", internalshared.UserSafeMessage(err))
		return
	}
	title, _ := kind.Label()
	h.page.RedirectWithFlash(w, r, basePath(kind), "success", title+" deleted")
}
