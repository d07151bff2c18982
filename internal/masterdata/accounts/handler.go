package accounts

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

// Handler serves the bank account pages.
type Handler struct {
	service *Service
	page    *shared.Page
}

// NewHandler builds Handler instance.
func NewHandler(service *Service, page *shared.Page) *Handler {
	return &Handler{service: service, page: page}
}

// MountRoutes registers account routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/new", h.form)
	r.Get("/{id}", h.edit)
	r.Post("/", h.create)
	r.Post("/{id}", h.update)
	r.Post("/{id}/delete", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	filters := listing.FromQuery(r.URL.Query().Get("search"), "")
	items, err := h.service.List(r.Context(), user.CompanyID, filters)
	if err != nil {
		h.page.Logger.Error("list accounts", slog.Any("error", err))
		h.page.RedirectWithFlash(w, r, "/", "error", internalshared.UserSafeMessage(err))
		return
	}
	table := view.Table{
		Columns: []view.Column{
			{Key: "bank", Label: "Bank"},
			{Key: "number", Label: "Account Number"},
			{Key: "currency", Label: "Currency"},
		},
		Empty: "No bank accounts yet",
	}
	for _, a := range items {
		table.Rows = append(table.Rows, view.Row{
			"bank":     view.LinkCell(a.BankName, "/masterdata/accounts/"+strconv.FormatInt(a.ID, 10)),
			"number":   view.TextCell(a.Number),
			"currency": view.TextCell(a.Currency),
		})
	}
	h.page.Render(w, r, "Bank Accounts", "pages/masterdata/accounts_list.html", map[string]any{
		"Table":   table,
		"Filters": filters,
	}, http.StatusOK)
}

func (h *Handler) form(w http.ResponseWriter, r *http.Request) {
	h.page.Render(w, r, "New Account", "pages/masterdata/account_form.html", map[string]any{
		"Form":   AccountForm{},
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
	account, err := h.service.Get(r.Context(), user.CompanyID, id)
	if err != nil {
		h.page.Logger.Error("load account", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, "/masterdata/accounts", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.Render(w, r, "Edit Account", "pages/masterdata/account_form.html", map[string]any{
		"ID": account.ID,
		"Form": AccountForm{
			BankName: account.BankName,
			Number:   account.Number,
			Currency: account.Currency,
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
	form := AccountForm{
		BankName: r.PostFormValue("bank_name"),
		Number:   r.PostFormValue("number"),
		Currency: r.PostFormValue("currency"),
	}
	if errs := FieldErrors(form); len(errs) > 0 {
		h.page.Render(w, r, "Account", "pages/masterdata/account_form.html", map[string]any{
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
		h.page.Logger.Error("save account", slog.Any("error", err))
		h.page.RedirectWithFlash(w, r, "/masterdata/accounts", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.RedirectWithFlash(w, r, "/masterdata/accounts", "success", "Account saved")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user := h.page.CurrentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err := h.service.Delete(r.Context(), user.CompanyID, id); err != nil {
		h.page.Logger.Error("delete account", slog.Any("error", err), slog.Int64("id", id))
		h.page.RedirectWithFlash(w, r, "/masterdata/accounts", "error", internalshared.UserSafeMessage(err))
		return
	}
	h.page.RedirectWithFlash(w, r, "/masterdata/accounts", "success", "Account deleted")
}
