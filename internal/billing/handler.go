package billing

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/shared"
	"github.com/meridian-bms/meridian/internal/store"
	"github.com/meridian-bms/meridian/internal/view"
)

// Handler serves bill and invoice pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	state     *store.Store
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager, state *store.Store) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf, state: state}
}

// MountRoutes registers billing routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/bills", h.listBills)
	r.Get("/bills/{id}", h.showBill)
	r.Post("/bills/{id}/payments", h.payBill)
	r.Get("/invoices", h.listInvoices)
	r.Get("/invoices/{id}", h.showInvoice)
	r.Post("/invoices/{id}/payments", h.payInvoice)
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	filters := listing.FromQuery(r.URL.Query().Get("search"), r.URL.Query().Get("status"))
	bills, err := h.service.ListBills(r.Context(), user.CompanyID, filters)
	if err != nil {
		h.logger.Error("list bills", slog.Any("error", err))
		h.redirectWithFlash(w, r, "/", "error", shared.UserSafeMessage(err))
		return
	}
	now := time.Now()
	table := view.Table{
		Columns: []view.Column{
			{Key: "number", Label: "Number"},
			{Key: "vendor", Label: "Vendor"},
			{Key: "due", Label: "Due Date"},
			{Key: "amount", Label: "Amount Due", Align: "right"},
			{Key: "paid", Label: "Paid", Align: "right"},
			{Key: "balance", Label: "Balance", Align: "right"},
			{Key: "status", Label: "Status"},
		},
		Empty: "No bills recorded",
	}
	for _, b := range bills {
		text, tone := b.Status(now).Label()
		table.Rows = append(table.Rows, view.Row{
			"number":  view.LinkCell(b.Number, "/billing/bills/"+strconv.FormatInt(b.ID, 10)),
			"vendor":  view.TextCell(b.VendorName),
			"due":     view.TextCell(b.DueDate.Format("02 Jan 2006")),
			"amount":  view.TextCell(b.AmountDue.StringFixed(2)),
			"paid":    view.TextCell(b.TotalPaid.StringFixed(2)),
			"balance": view.TextCell(b.Balance().StringFixed(2)),
			"status":  view.BadgeCell(text, tone),
		})
	}
	h.render(w, r, "pages/billing/bills_list.html", map[string]any{
		"Table":    table,
		"Filters":  filters,
		"Statuses": []DocumentStatus{StatusOutstanding, StatusPartial, StatusPaid, StatusOverdue},
	}, http.StatusOK)
}

func (h *Handler) showBill(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	bill, payments, err := h.service.GetBill(r.Context(), user.CompanyID, id)
	if err != nil {
		h.logger.Error("load bill", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/billing/bills", "error", shared.UserSafeMessage(err))
		return
	}
	text, tone := bill.Status(time.Now()).Label()
	h.render(w, r, "pages/billing/bill_detail.html", map[string]any{
		"Bill":       bill,
		"Payments":   payments,
		"Balance":    bill.Balance(),
		"StatusText": text,
		"StatusTone": tone,
	}, http.StatusOK)
}

func (h *Handler) payBill(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	amount, _ := decimal.NewFromString(r.PostFormValue("amount"))
	err := h.service.PayBill(r.Context(), user.CompanyID, id,
		amount, r.PostFormValue("method"), r.PostFormValue("note"))
	location := "/billing/bills/" + strconv.FormatInt(id, 10)
	if err != nil {
		h.logger.Error("pay bill", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, location, "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, location, "success", "Payment recorded")
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	if branchID == 0 {
		h.redirectWithFlash(w, r, "/", "error", "Select a branch first")
		return
	}
	filters := listing.FromQuery(r.URL.Query().Get("search"), r.URL.Query().Get("status"))
	invoices, err := h.service.ListInvoices(r.Context(), branchID, filters)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		h.redirectWithFlash(w, r, "/", "error", shared.UserSafeMessage(err))
		return
	}
	now := time.Now()
	table := view.Table{
		Columns: []view.Column{
			{Key: "number", Label: "Number"},
			{Key: "client", Label: "Client"},
			{Key: "due", Label: "Due Date"},
			{Key: "amount", Label: "Total", Align: "right"},
			{Key: "paid", Label: "Paid", Align: "right"},
			{Key: "balance", Label: "Balance", Align: "right"},
			{Key: "status", Label: "Status"},
		},
		Empty: "No invoices for this branch",
	}
	for _, inv := range invoices {
		text, tone := inv.Status(now).Label()
		table.Rows = append(table.Rows, view.Row{
			"number":  view.LinkCell(inv.Number, "/billing/invoices/"+strconv.FormatInt(inv.ID, 10)),
			"client":  view.TextCell(inv.ClientName),
			"due":     view.TextCell(inv.DueDate.Format("02 Jan 2006")),
			"amount":  view.TextCell(inv.TotalAmount.StringFixed(2)),
			"paid":    view.TextCell(inv.TotalPaid.StringFixed(2)),
			"balance": view.TextCell(inv.Balance().StringFixed(2)),
			"status":  view.BadgeCell(text, tone),
		})
	}
	h.render(w, r, "pages/billing/invoices_list.html", map[string]any{
		"Table":    table,
		"Filters":  filters,
		"Statuses": []DocumentStatus{StatusOutstanding, StatusPartial, StatusPaid, StatusOverdue},
	}, http.StatusOK)
}

func (h *Handler) showInvoice(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	inv, payments, err := h.service.GetInvoice(r.Context(), branchID, id)
	if err != nil {
		h.logger.Error("load invoice", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/billing/invoices", "error", shared.UserSafeMessage(err))
		return
	}
	text, tone := inv.Status(time.Now()).Label()
	h.render(w, r, "pages/billing/invoice_detail.html", map[string]any{
		"Invoice":    inv,
		"Payments":   payments,
		"Balance":    inv.Balance(),
		"StatusText": text,
		"StatusTone": tone,
	}, http.StatusOK)
}

func (h *Handler) payInvoice(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	amount, _ := decimal.NewFromString(r.PostFormValue("amount"))
	err := h.service.PayInvoice(r.Context(), branchID, id,
		amount, r.PostFormValue("method"), r.PostFormValue("note"))
	location := "/billing/invoices/" + strconv.FormatInt(id, 10)
	if err != nil {
		h.logger.Error("pay invoice", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, location, "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, location, "success", "Payment recorded")
}

func (h *Handler) currentUser(r *http.Request) *store.CurrentUser {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return nil
	}
	user, err := h.state.CurrentUser(r.Context(), sess.ID)
	if err != nil {
		return nil
	}
	return user
}

func (h *Handler) selectedBranch(r *http.Request) int64 {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return 0
	}
	id, err := h.state.SelectedBranch(r.Context(), sess.ID)
	if err != nil {
		h.logger.Warn("read selected branch", slog.Any("error", err))
		return 0
	}
	return id
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:          "Billing",
		CSRFToken:      csrfToken,
		Flash:          flash,
		CurrentPath:    r.URL.Path,
		User:           h.currentUser(r),
		SelectedBranch: h.selectedBranch(r),
		Data:           data,
	}
	if err := h.templates.RenderStatus(w, status, template, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
