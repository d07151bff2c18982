package inventory

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/shared"
	"github.com/meridian-bms/meridian/internal/store"
	"github.com/meridian-bms/meridian/internal/view"
)

// Handler serves the stock pages for the selected branch.
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

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.show)
	r.Post("/{id}/movements", h.recordMovement)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	if branchID == 0 {
		h.redirectWithFlash(w, r, "/", "error", "Select a branch first")
		return
	}
	filters := listing.FromQuery(r.URL.Query().Get("search"), r.URL.Query().Get("status"))
	items, err := h.service.List(r.Context(), branchID, filters)
	if err != nil {
		h.logger.Error("list inventory", slog.Any("error", err))
		h.redirectWithFlash(w, r, "/", "error", shared.UserSafeMessage(err))
		return
	}
	table := view.Table{
		Columns: []view.Column{
			{Key: "product", Label: "Product"},
			{Key: "sku", Label: "SKU"},
			{Key: "available", Label: "Available", Align: "right"},
			{Key: "reorder", Label: "Reorder At", Align: "right"},
			{Key: "stock", Label: "Stock"},
		},
		Empty: "No stock at this branch",
	}
	for _, inv := range items {
		stock := view.BadgeCell("OK", "success")
		if inv.LowStock() {
			stock = view.BadgeCell("Low Stock", "danger")
		}
		table.Rows = append(table.Rows, view.Row{
			"product":   view.LinkCell(inv.ProductName, "/inventory/"+strconv.FormatInt(inv.ID, 10)),
			"sku":       view.TextCell(inv.SKU),
			"available": view.TextCell(strconv.FormatInt(inv.UnitsAvailable, 10)),
			"reorder":   view.TextCell(strconv.FormatInt(inv.ReorderLevel, 10)),
			"stock":     stock,
		})
	}
	h.render(w, r, "pages/inventory/list.html", map[string]any{
		"Table":   table,
		"Filters": filters,
	}, http.StatusOK)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	if branchID == 0 {
		h.redirectWithFlash(w, r, "/", "error", "Select a branch first")
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	inv, audits, err := h.service.Get(r.Context(), branchID, id)
	if err != nil {
		h.logger.Error("load inventory", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/inventory", "error", shared.UserSafeMessage(err))
		return
	}
	h.render(w, r, "pages/inventory/detail.html", map[string]any{
		"Inventory": inv,
		"Audits":    audits,
	}, http.StatusOK)
}

func (h *Handler) recordMovement(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	if branchID == 0 {
		h.redirectWithFlash(w, r, "/", "error", "Select a branch first")
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	quantity, _ := strconv.ParseInt(r.PostFormValue("quantity"), 10, 64)
	input := MovementInput{
		Type:     MovementType(r.PostFormValue("type")),
		Quantity: quantity,
		Reason:   r.PostFormValue("reason"),
	}
	recordedBy := ""
	if user := h.currentUser(r); user != nil {
		recordedBy = user.Email
	}
	location := "/inventory/" + strconv.FormatInt(id, 10)
	if _, err := h.service.RecordMovement(r.Context(), branchID, id, input, recordedBy); err != nil {
		h.logger.Error("record movement", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, location, "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, location, "success", "Movement recorded")
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
		Title:          "Inventory",
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
