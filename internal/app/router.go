package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-bms/meridian/internal/auth"
	"github.com/meridian-bms/meridian/internal/billing"
	"github.com/meridian-bms/meridian/internal/inventory"
	"github.com/meridian-bms/meridian/internal/lookups"
	"github.com/meridian-bms/meridian/internal/masterdata"
	"github.com/meridian-bms/meridian/internal/observability"
	"github.com/meridian-bms/meridian/internal/orders"
	"github.com/meridian-bms/meridian/internal/platform/httpx"
	"github.com/meridian-bms/meridian/internal/session"
	"github.com/meridian-bms/meridian/internal/shared"
	"github.com/meridian-bms/meridian/internal/store"
	"github.com/meridian-bms/meridian/internal/view"
	"github.com/meridian-bms/meridian/jobs"
	"github.com/meridian-bms/meridian/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Templates      *view.Engine
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Cookies        *session.CookieCodec
	State          *store.Store
	Lookups        *lookups.Service

	AuthHandler       *auth.Handler
	OrdersHandler     *orders.Handler
	InventoryHandler  *inventory.Handler
	BillingHandler    *billing.Handler
	MasterDataHandler *masterdata.Handlers
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router for the dashboard.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Cookies:        params.Cookies,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())

		if sess == nil || sess.User() == "" {
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}

		csrfToken, _ := params.CSRFManager.EnsureToken(r.Context(), sess)
		var flash *shared.FlashMessage
		if sess != nil {
			flash = sess.PopFlash()
		}
		var user *store.CurrentUser
		var selectedBranch int64
		if u, err := params.State.CurrentUser(r.Context(), sess.ID); err == nil {
			user = u
		}
		if id, err := params.State.SelectedBranch(r.Context(), sess.ID); err == nil {
			selectedBranch = id
		}
		var companyName string
		if params.Lookups != nil && user != nil {
			name, err := params.Lookups.CompanyName(r.Context(), user.CompanyID)
			if err != nil {
				params.Logger.Warn("resolve company name", slog.Any("error", err))
			}
			companyName = name
		}
		data := view.TemplateData{
			Title:          "Meridian",
			CSRFToken:      csrfToken,
			Flash:          flash,
			CurrentPath:    r.URL.Path,
			User:           user,
			SelectedBranch: selectedBranch,
			Data: map[string]any{
				"AppEnv":      params.Config.AppEnv,
				"CompanyName": companyName,
			},
		}
		if err := params.Templates.Render(w, "pages/home.html", data); err != nil {
			params.Logger.Error("render home", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/orders", params.OrdersHandler.MountRoutes)
	r.Route("/inventory", params.InventoryHandler.MountRoutes)
	r.Route("/billing", params.BillingHandler.MountRoutes)
	if params.MasterDataHandler != nil {
		r.Route("/masterdata", params.MasterDataHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
