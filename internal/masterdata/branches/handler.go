package branches

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

// Handler serves the branch pages for the signed-in user's company.
type Handler struct {
	service *Service
	page    *shared.Page
}

// NewHandler builds Handler instance.
func NewHandler(service *Service, page *shared.Page) *Handler {
	return &Handler{service: service, page: page}
}

// MountRoutes registers branch routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/new", h.form)
	r.Get("/{id}", h.edit)
	r.Post("/", h.create)
	r.Post("/{id}", h.update)
	r.Post("/{id}/delete", h.delete)
	r.Post("/{id}/select", h.selectBranch)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	filters := listing.FromQuery(r.URL.Query().Get("search"), r.URL.Query().Get("status"))
	items, err := h.service.List(r.Context(), user.CompanyID, filters)
	if err != nil {
		h.page.Logger.Error("list branches", slog.Any("error", err))
		h.page.RedirectWithFlash(w, r, "/", "error", internalshared.UserSafeMessage(err))
		return
	}
	selected := h.page.SelectedBranch(r)
	table := view.Table{
		Columns: []view.Column{
			{Key: "name", Label: "Name"},
			{Key: "country", Label: "Country"},
			{Key: "currency", Label: "Currency"},
			{Key: "status", Label: "Status"},
			{Key: "selected", Label: "Working Branch"},
		},
		Empty: "No branches yet",
	}
	for _, b := range items {
		text, tone := b.Status.Label()
		working := view.TextCell("")
		if b.ID == selected {
			working = view.BadgeCell("Selected", "info")
		}
		table.Rows = append(table.Rows, view.Row{
			"name":     view.LinkCell(b.Name, "/masterdata/branches/"+strconv.FormatInt(b.ID, 10)),
			"country":  view.TextCell(b.Country),
			"currency": view.TextCell(b.Currency),
			"status":   view.BadgeCell(text, tone),
			"selected": working,
		})
	}
	h.page.Render(w, r, "Branches", "pages/masterdata/branches_list.html", map[string]any{
		"Table":    table,
		"Filters":  filters,
		"Branches": items,
		"Selected": selected,
	}, http.StatusOK)
}

func (h *Handler) form(w http.ResponseWriter, r *http.Request) {
	h.page.Render(w, r, "New Branch", "pages/masterdata/branch_form.html", map[string]any{
		"Form":   BranchForm{Status: string(shared.StatusActive)},
		"Errors": map[string]string{},
	}, http.StatusOK)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	branch, err := h.service.Get(r.Context(), user.CompanyID, id)
	if err != nil {
		h.page.Logger.Error("load branch", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, "/masterdata/branches", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.Render(w, r, "Edit Branch", "pages/masterdata/branch_form.html", map[string]any{
		"ID": branch.ID,
		"Form": BranchForm{
			Name:     branch.Name,
			Country:  branch.Country,
			Currency: branch.Currency,
			Status:   string(branch.Status),
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
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	form := BranchForm{
		Name:     r.PostFormValue("name"),
		Country:  r.PostFormValue("country"),
		Currency: r.PostFormValue("currency"),
		Status:   r.PostFormValue("status"),
	}
	if errs := FieldErrors(form); len(errs) > 0 {
		h.page.Render(w, r, "Branch", "pages/masterdata/branch_form.html", map[string]any{
			"ID": id, "Form": form, "Errors": errs,
		}, http.StatusBadRequest)
		return
	}
	var err error
	if id == 0 {
		_, err = h.service.Create(r.Context(), user.CompanyID, form)
	} else {
		err = h.service.Update(r.Context(), user.CompanyID, id, form)
	}
	if err != nil {
		h.page.Logger.Error("save branch", slog.Any("error", err))
		h.page.RedirectWithFlash(w, r, "/masterdata/branches", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.RedirectWithFlash(w, r, "/masterdata/branches", "success", "Branch saved")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err := h.service.Delete(r.Context(), user.CompanyID, id); err != nil {
		h.page.Logger.Error("delete branch", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, "/masterdata/branches", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.RedirectWithFlash(w, r, "/masterdata/branches", "success", "Branch deleted")
}

// selectBranch sets the working branch used by the branch-scoped pages.
func (h *Handler) selectBranch(w http.ResponseWriter, r *http.Request) {
	sess := internalshared.SessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	branch, err := h.service.Get(r.Context(), user.CompanyID, id)
	if err != nil {
		h.page.Logger.Error("select branch", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, "/masterdata/branches", "error", internalshared.UserSafeMessage(err))
		return
	}
	if err := h.page.State.SetSelectedBranch(r.Context(), sess.ID, branch.ID); err != nil {
		h.page.Logger.Error("persist selected branch", slog.Any("error", err))
		h.page.RedirectWithFlash(w, r, "/masterdata/branches", "error", "Could not switch branch")
		return
	}
	h.page.RedirectWithFlash(w, r, "/masterdata/branches", "success", "Working branch set to "+branch.Name)
}
