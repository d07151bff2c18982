package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-bms/meridian/internal/session"
	"github.com/meridian-bms/meridian/internal/shared"
	"github.com/meridian-bms/meridian/internal/store"
	"github.com/meridian-bms/meridian/internal/view"
)

// RefreshTrigger asks the background worker to rewarm the cached dropdown
// collections. May be nil.
type RefreshTrigger func(ctx context.Context)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	templates      *view.Engine
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	cookies        *session.CookieCodec
	state          *store.Store
	refresh        RefreshTrigger
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager, cookies *session.CookieCodec, state *store.Store, refresh RefreshTrigger) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		templates:      templates,
		sessionManager: sessions,
		csrfManager:    csrf,
		cookies:        cookies,
		state:          state,
		refresh:        refresh,
		validator:      validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Get("/register", h.showRegister)
	r.Post("/register", h.handleRegister)
	r.Post("/logout", h.handleLogout)
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type registerForm struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"required,eqfield=Password"`
}

type loginPageData struct {
	Form   loginForm
	Errors map[string]string
}

type registerPageData struct {
	Form   registerForm
	Errors map[string]string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, loginPageData{Form: loginForm{}}, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	errors := h.fieldErrors(form)

	if len(errors) == 0 {
		user, err := h.service.Login(r.Context(), Credentials{Email: form.Email, Password: form.Password})
		if err != nil {
			h.logger.Warn("login rejected", slog.String("email", form.Email), slog.Any("error", err))
			errors["general"] = "Invalid email or password"
		} else {
			h.establish(w, r, user)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	h.renderLogin(w, r, loginPageData{Form: form, Errors: errors}, http.StatusBadRequest)
}

func (h *Handler) showRegister(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, registerPageData{Form: registerForm{}}, http.StatusOK)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := registerForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Confirm:  r.PostFormValue("confirm"),
	}
	errors := h.fieldErrors(form)

	if len(errors) == 0 {
		user, err := h.service.Register(r.Context(), Registration{
			Name:     form.Name,
			Email:    form.Email,
			Password: form.Password,
		})
		if err != nil {
			h.logger.Warn("registration failed", slog.String("email", form.Email), slog.Any("error", err))
			errors["general"] = shared.UserSafeMessage(err)
		} else {
			h.establish(w, r, user)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	h.renderRegister(w, r, registerPageData{Form: form, Errors: errors}, http.StatusBadRequest)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		if err := h.state.Clear(r.Context(), sess.ID); err != nil {
			h.logger.Warn("clear store on logout", slog.Any("error", err))
		}
		h.sessionManager.Destroy(sess)
	}
	h.cookies.Clear(w)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

// establish writes the token cookie and seeds the store with the profile.
func (h *Handler) establish(w http.ResponseWriter, r *http.Request, user AuthenticatedUser) {
	if err := h.cookies.Write(w, user.Tokens); err != nil {
		h.logger.Error("write token cookie", slog.Any("error", err))
	}
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		return
	}
	sess.SetUser(strconv.FormatInt(user.ID, 10))
	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Welcome back"})
	if err := h.state.SetCurrentUser(r.Context(), sess.ID, store.CurrentUser{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CompanyID: user.Company,
	}); err != nil {
		h.logger.Error("seed store", slog.Any("error", err))
	}
	if h.refresh != nil {
		h.refresh(r.Context())
	}
}

func (h *Handler) fieldErrors(form any) map[string]string {
	errors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range verrs {
				switch fieldErr.Tag() {
				case "required":
					errors[fieldErr.Field()] = "This field is required"
				case "email":
					errors[fieldErr.Field()] = "Enter a valid email address"
				case "min":
					errors[fieldErr.Field()] = "Too short"
				case "eqfield":
					errors[fieldErr.Field()] = "Passwords do not match"
				default:
					errors[fieldErr.Field()] = "Invalid value"
				}
			}
		}
	}
	return errors
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, data loginPageData, status int) {
	h.renderPage(w, r, "Sign In", "pages/login.html", data, status)
}

func (h *Handler) renderRegister(w http.ResponseWriter, r *http.Request, data registerPageData, status int) {
	h.renderPage(w, r, "Create Account", "pages/register.html", data, status)
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, title, template string, data any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrfManager.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.RenderStatus(w, status, template, viewData); err != nil {
		h.logger.Error("render auth page", slog.Any("error", err))
	}
}
