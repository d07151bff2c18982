package orders

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/meridian-bms/meridian/internal/listing"
	"github.com/meridian-bms/meridian/internal/lookups"
	"github.com/meridian-bms/meridian/internal/shared"
	"github.com/meridian-bms/meridian/internal/store"
	"github.com/meridian-bms/meridian/internal/view"
)

// Handler serves the order list and form pages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	state     *store.Store
	lookups   *lookups.Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager, state *store.Store, lookups *lookups.Service) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf, state: state, lookups: lookups}
}

// MountRoutes registers order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/purchase", h.listPurchase)
	r.Get("/purchase/new", h.showPurchaseForm)
	r.Get("/purchase/{id}", h.showPurchaseEdit)
	r.Post("/purchase", h.createPurchase)
	r.Post("/purchase/{id}", h.updatePurchase)
	r.Post("/purchase/{id}/delete", h.deletePurchase)

	r.Get("/sales", h.listSales)
	r.Get("/sales/new", h.showSaleForm)
	r.Get("/sales/{id}", h.showSaleEdit)
	r.Post("/sales", h.createSale)
	r.Post("/sales/{id}", h.updateSale)
	r.Post("/sales/{id}/delete", h.deleteSale)

	r.Get("/requisitions", h.listRequisitions)
	r.Get("/requisitions/new", h.showRequisitionForm)
	r.Get("/requisitions/{id}", h.showRequisitionEdit)
	r.Post("/requisitions", h.createRequisition)
	r.Post("/requisitions/{id}", h.updateRequisition)
}

func (h *Handler) listPurchase(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, h.state)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	filters := listing.FromQuery(r.URL.Query().Get("search"), r.URL.Query().Get("status"))
	items, err := h.service.ListPurchase(r.Context(), user.CompanyID, filters)
	if err != nil {
		h.logger.Error("list purchase orders", slog.Any("error", err))
		h.redirectWithFlash(w, r, "/", "error", shared.UserSafeMessage(err))
		return
	}
	table := view.Table{
		Columns: []view.Column{
			{Key: "number", Label: "Number"},
			{Key: "vendor", Label: "Vendor"},
			{Key: "date", Label: "Order Date"},
			{Key: "total", Label: "Total", Align: "right"},
			{Key: "fulfillment", Label: "Delivered", Align: "right"},
			{Key: "status", Label: "Status"},
		},
		Empty: "No purchase orders yet",
	}
	for _, o := range items {
		label := o.Status.Label()
		table.Rows = append(table.Rows, view.Row{
			"number":      view.LinkCell(o.Number, "/orders/purchase/"+strconv.FormatInt(o.ID, 10)),
			"vendor":      view.TextCell(o.VendorName),
			"date":        view.TextCell(o.OrderDate.Format("02 Jan 2006")),
			"total":       view.TextCell(o.Total().StringFixed(2)),
			"fulfillment": view.TextCell(o.Fulfillment().Round(1).String() + "%"),
			"status":      view.BadgeCell(label.Text, label.Tone),
		})
	}
	h.render(w, r, "pages/orders/purchase_list.html", map[string]any{
		"Table":   table,
		"Filters": filters,
		"Statuses": []PurchaseStatus{
			PurchasePending, PurchaseApproved, PurchaseDelivered, PurchaseCancelled,
		},
	}, http.StatusOK)
}

func (h *Handler) showPurchaseForm(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, h.state)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	h.render(w, r, "pages/orders/purchase_form.html", map[string]any{
		"Order":    PurchaseOrder{Status: PurchasePending},
		"Errors":   map[string]string{},
		"Vendors":  h.vendorOptions(r),
		"Products": h.productOptions(r),
	}, http.StatusOK)
}

func (h *Handler) showPurchaseEdit(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, h.state)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	order, err := h.service.GetPurchase(r.Context(), user.CompanyID, id)
	if err != nil {
		h.logger.Error("load purchase order", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/orders/purchase", "error", shared.UserSafeMessage(err))
		return
	}
	h.render(w, r, "pages/orders/purchase_form.html", map[string]any{
		"Order":    order,
		"Errors":   map[string]string{},
		"Vendors":  h.vendorOptions(r),
		"Products": h.productOptions(r),
	}, http.StatusOK)
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	h.submitPurchase(w, r, 0)
}

func (h *Handler) updatePurchase(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	h.submitPurchase(w, r, id)
}

func (h *Handler) submitPurchase(w http.ResponseWriter, r *http.Request, orderID int64) {
	user := currentUser(r, h.state)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	vendorID, _ := strconv.ParseInt(r.PostFormValue("vendor_id"), 10, 64)
	input := PurchaseInput{
		VendorID:     vendorID,
		Status:       PurchaseStatus(r.PostFormValue("status")),
		OrderDate:    parseDate(r.PostFormValue("order_date")),
		ExpectedDate: parseDate(r.PostFormValue("expected_date")),
		Note:         r.PostFormValue("note"),
		Lines:        parseLines(r, "delivered_quantity"),
	}
	var err error
	if orderID == 0 {
		_, err = h.service.CreatePurchase(r.Context(), user.CompanyID, input)
	} else {
		_, err = h.service.UpdatePurchase(r.Context(), user.CompanyID, orderID, input)
	}
	if err != nil {
		h.logger.Error("submit purchase order", slog.Any("error", err))
		h.render(w, r, "pages/orders/purchase_form.html", map[string]any{
			"Order":    PurchaseOrder{ID: orderID, VendorID: vendorID, Status: input.Status, Note: input.Note},
			"Errors":   map[string]string{"general": shared.UserSafeMessage(err)},
			"Vendors":  h.vendorOptions(r),
			"Products": h.productOptions(r),
		}, http.StatusBadRequest)
		return
	}
	h.redirectWithFlash(w, r, "/orders/purchase", "success", "Purchase order saved")
}

func (h *Handler) deletePurchase(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, h.state)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err := h.service.DeletePurchase(r.Context(), user.CompanyID, id); err != nil {
		h.logger.Error("delete purchase order", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/orders/purchase", "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, "/orders/purchase", "success", "Purchase order deleted")
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	if branchID == 0 {
		h.redirectWithFlash(w, r, "/", "error", "Select a branch first")
		return
	}
	filters := listing.FromQuery(r.URL.Query().Get("search"), r.URL.Query().Get("status"))
	items, err := h.service.ListSales(r.Context(), branchID, filters)
	if err != nil {
		h.logger.Error("list sale orders", slog.Any("error", err))
		h.redirectWithFlash(w, r, "/", "error", shared.UserSafeMessage(err))
		return
	}
	table := view.Table{
		Columns: []view.Column{
			{Key: "number", Label: "Number"},
			{Key: "client", Label: "Client"},
			{Key: "date", Label: "Order Date"},
			{Key: "total", Label: "Total", Align: "right"},
			{Key: "status", Label: "Status"},
		},
		Empty: "No sale orders for this branch",
	}
	for _, o := range items {
		label := o.Status.Label()
		table.Rows = append(table.Rows, view.Row{
			"number": view.LinkCell(o.Number, "/orders/sales/"+strconv.FormatInt(o.ID, 10)),
			"client": view.TextCell(o.ClientName),
			"date":   view.TextCell(o.OrderDate.Format("02 Jan 2006")),
			"total":  view.TextCell(o.Total().StringFixed(2)),
			"status": view.BadgeCell(label.Text, label.Tone),
		})
	}
	h.render(w, r, "pages/orders/sale_list.html", map[string]any{
		"Table":   table,
		"Filters": filters,
		"Statuses": []SaleStatus{
			SalePending, SaleConfirmed, SaleFulfilled, SaleCancelled,
		},
	}, http.StatusOK)
}

func (h *Handler) showSaleForm(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, h.state)
	if user == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	h.render(w, r, "pages/orders/sale_form.html", map[string]any{
		"Order":    SaleOrder{Status: SalePending},
		"Errors":   map[string]string{},
		"Clients":  h.clientOptions(r),
		"Products": h.productOptions(r),
	}, http.StatusOK)
}

func (h *Handler) showSaleEdit(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	order, err := h.service.GetSale(r.Context(), branchID, id)
	if err != nil {
		h.logger.Error("load sale order", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/orders/sales", "error", shared.UserSafeMessage(err))
		return
	}
	h.render(w, r, "pages/orders/sale_form.html", map[string]any{
		"Order":    order,
		"Errors":   map[string]string{},
		"Clients":  h.clientOptions(r),
		"Products": h.productOptions(r),
	}, http.StatusOK)
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	h.submitSale(w, r, 0)
}

func (h *Handler) updateSale(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	h.submitSale(w, r, id)
}

func (h *Handler) submitSale(w http.ResponseWriter, r *http.Request, orderID int64) {
	branchID := h.selectedBranch(r)
	if branchID == 0 {
		h.redirectWithFlash(w, r, "/", "error", "Select a branch first")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	clientID, _ := strconv.ParseInt(r.PostFormValue("client_id"), 10, 64)
	input := SaleInput{
		ClientID:  clientID,
		Status:    SaleStatus(r.PostFormValue("status")),
		OrderDate: parseDate(r.PostFormValue("order_date")),
		Note:      r.PostFormValue("note"),
		Lines:     parseLines(r, ""),
	}
	var err error
	if orderID == 0 {
		_, err = h.service.CreateSale(r.Context(), branchID, input)
	} else {
		_, err = h.service.UpdateSale(r.Context(), branchID, orderID, input)
	}
	if err != nil {
		h.logger.Error("submit sale order", slog.Any("error", err))
		h.render(w, r, "pages/orders/sale_form.html", map[string]any{
			"Order":    SaleOrder{ID: orderID, ClientID: clientID, Status: input.Status, Note: input.Note},
			"Errors":   map[string]string{"general": shared.UserSafeMessage(err)},
			"Clients":  h.clientOptions(r),
			"Products": h.productOptions(r),
		}, http.StatusBadRequest)
		return
	}
	h.redirectWithFlash(w, r, "/orders/sales", "success", "Sale order saved")
}

func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err := h.service.DeleteSale(r.Context(), branchID, id); err != nil {
		h.logger.Error("delete sale order", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/orders/sales", "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, "/orders/sales", "success", "Sale order deleted")
}

func (h *Handler) listRequisitions(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	if branchID == 0 {
		h.redirectWithFlash(w, r, "/", "error", "Select a branch first")
		return
	}
	filters := listing.FromQuery(r.URL.Query().Get("search"), r.URL.Query().Get("status"))
	items, err := h.service.ListRequisitions(r.Context(), branchID, filters)
	if err != nil {
		h.logger.Error("list requisitions", slog.Any("error", err))
		h.redirectWithFlash(w, r, "/", "error", shared.UserSafeMessage(err))
		return
	}
	table := view.Table{
		Columns: []view.Column{
			{Key: "number", Label: "Number"},
			{Key: "date", Label: "Requested"},
			{Key: "total", Label: "Total", Align: "right"},
			{Key: "fulfillment", Label: "Fulfilled", Align: "right"},
			{Key: "status", Label: "Status"},
		},
		Empty: "No requisitions for this branch",
	}
	for _, o := range items {
		label := o.Status.Label()
		table.Rows = append(table.Rows, view.Row{
			"number":      view.LinkCell(o.Number, "/orders/requisitions/"+strconv.FormatInt(o.ID, 10)),
			"date":        view.TextCell(o.RequestDate.Format("02 Jan 2006")),
			"total":       view.TextCell(o.Total().StringFixed(2)),
			"fulfillment": view.TextCell(o.Fulfillment().Round(1).String() + "%"),
			"status":      view.BadgeCell(label.Text, label.Tone),
		})
	}
	h.render(w, r, "pages/orders/requisition_list.html", map[string]any{
		"Table":   table,
		"Filters": filters,
		"Statuses": []RequisitionStatus{
			RequisitionPending, RequisitionApproved, RequisitionInTransit,
			RequisitionFulfilled, RequisitionRejected,
		},
	}, http.StatusOK)
}

func (h *Handler) showRequisitionForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/orders/requisition_form.html", map[string]any{
		"Order":    RequisitionOrder{Status: RequisitionPending},
		"Errors":   map[string]string{},
		"Branches": h.branchOptions(r),
		"Products": h.productOptions(r),
	}, http.StatusOK)
}

func (h *Handler) showRequisitionEdit(w http.ResponseWriter, r *http.Request) {
	branchID := h.selectedBranch(r)
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	order, err := h.service.GetRequisition(r.Context(), branchID, id)
	if err != nil {
		h.logger.Error("load requisition", slog.Any("error", err), slog.Int64("id", id))
		h.redirectWithFlash(w, r, "/orders/requisitions", "error", shared.UserSafeMessage(err))
		return
	}
	h.render(w, r, "pages/orders/requisition_form.html", map[string]any{
		"Order":    order,
		"Errors":   map[string]string{},
		"Branches": h.branchOptions(r),
		"Products": h.productOptions(r),
	}, http.StatusOK)
}

func (h *Handler) createRequisition(w http.ResponseWriter, r *http.Request) {
	h.submitRequisition(w, r, 0)
}

func (h *Handler) updateRequisition(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	h.submitRequisition(w, r, id)
}

func (h *Handler) submitRequisition(w http.ResponseWriter, r *http.Request, orderID int64) {
	branchID := h.selectedBranch(r)
	if branchID == 0 {
		h.redirectWithFlash(w, r, "/", "error", "Select a branch first")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sourceID, _ := strconv.ParseInt(r.PostFormValue("source_branch_id"), 10, 64)
	destID, _ := strconv.ParseInt(r.PostFormValue("destination_branch_id"), 10, 64)
	input := RequisitionInput{
		SourceBranchID:      sourceID,
		DestinationBranchID: destID,
		Status:              RequisitionStatus(r.PostFormValue("status")),
		RequestDate:         parseDate(r.PostFormValue("request_date")),
		Note:                r.PostFormValue("note"),
		Lines:               parseLines(r, "quantity_fulfilled"),
	}
	var err error
	if orderID == 0 {
		_, err = h.service.CreateRequisition(r.Context(), branchID, input)
	} else {
		_, err = h.service.UpdateRequisition(r.Context(), branchID, orderID, input)
	}
	if err != nil {
		h.logger.Error("submit requisition", slog.Any("error", err))
		h.render(w, r, "pages/orders/requisition_form.html", map[string]any{
			"Order": RequisitionOrder{
				ID: orderID, SourceBranchID: sourceID, DestinationBranchID: destID,
				Status: input.Status, Note: input.Note,
			},
			"Errors":   map[string]string{"general": shared.UserSafeMessage(err)},
			"Branches": h.branchOptions(r),
			"Products": h.productOptions(r),
		}, http.StatusBadRequest)
		return
	}
	h.redirectWithFlash(w, r, "/orders/requisitions", "success", "Requisition saved")
}

// parseLines reads the parallel form arrays one row per line item. The
// fulfilled field name differs per order kind; empty means the form has no
// fulfillment column.
func parseLines(r *http.Request, fulfilledField string) []LineInput {
	productIDs := r.PostForm["product_id"]
	qtys := r.PostForm["quantity"]
	prices := r.PostForm["unit_price"]
	var fulfilled []string
	if fulfilledField != "" {
		fulfilled = r.PostForm[fulfilledField]
	}
	var lines []LineInput
	for i := range productIDs {
		pid, _ := strconv.ParseInt(productIDs[i], 10, 64)
		if pid == 0 {
			continue
		}
		line := LineInput{ProductID: pid}
		if i < len(qtys) {
			line.Quantity = parseDecimal(qtys[i])
		}
		if i < len(prices) {
			line.UnitPrice = parseDecimal(prices[i])
		}
		if i < len(fulfilled) {
			value := parseDecimal(fulfilled[i])
			line.Delivered = value
			line.Fulfilled = value
		}
		lines = append(lines, line)
	}
	return lines
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
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

func currentUser(r *http.Request, state *store.Store) *store.CurrentUser {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || state == nil {
		return nil
	}
	user, err := state.CurrentUser(r.Context(), sess.ID)
	if err != nil {
		return nil
	}
	return user
}

// Option helpers degrade to empty dropdowns when the lookup fails so the
// form still renders; the user can retype an ID by hand.

func (h *Handler) vendorOptions(r *http.Request) []lookups.Option {
	user := currentUser(r, h.state)
	if h.lookups == nil || user == nil {
		return nil
	}
	opts, err := h.lookups.Vendors(r.Context(), user.CompanyID)
	if err != nil {
		h.logger.Warn("load vendor options", slog.Any("error", err))
	}
	return opts
}

func (h *Handler) clientOptions(r *http.Request) []lookups.Option {
	user := currentUser(r, h.state)
	if h.lookups == nil || user == nil {
		return nil
	}
	opts, err := h.lookups.Clients(r.Context(), user.CompanyID)
	if err != nil {
		h.logger.Warn("load client options", slog.Any("error", err))
	}
	return opts
}

func (h *Handler) branchOptions(r *http.Request) []lookups.Option {
	user := currentUser(r, h.state)
	if h.lookups == nil || user == nil {
		return nil
	}
	opts, err := h.lookups.Branches(r.Context(), user.CompanyID)
	if err != nil {
		h.logger.Warn("load branch options", slog.Any("error", err))
	}
	return opts
}

func (h *Handler) productOptions(r *http.Request) []lookups.Option {
	branchID := h.selectedBranch(r)
	if h.lookups == nil || branchID == 0 {
		return nil
	}
	opts, err := h.lookups.Products(r.Context(), branchID)
	if err != nil {
		h.logger.Warn("load product options", slog.Any("error", err))
	}
	return opts
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:          "Orders",
		CSRFToken:      csrfToken,
		Flash:          flash,
		CurrentPath:    r.URL.Path,
		User:           currentUser(r, h.state),
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
