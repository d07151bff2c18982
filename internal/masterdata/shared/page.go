package shared

import (
	"log/slog"
	"net/http"

	internalshared "github.com/meridian-bms/meridian/internal/shared"
	"github.com/meridian-bms/meridian/internal/store"
	"github.com/meridian-bms/meridian/internal/view"
)

// Page bundles the rendering collaborators every master data handler needs.
type Page struct {
	Logger    *slog.Logger
	Templates *view.Engine
	CSRF      *internalshared.CSRFManager
	State     *store.Store
}

// CurrentUser resolves the signed-in user from the request session, nil when
// not signed in.
func (p *Page) CurrentUser(r *http.Request) *store.CurrentUser {
	sess := internalshared.SessionFromContext(r.Context())
	if sess == nil {
		return nil
	}
	user, err := p.State.CurrentUser(r.Context(), sess.ID)
	if err != nil {
		return nil
	}
	return user
}

// SelectedBranch returns the branch the user is working in, 0 when unset.
func (p *Page) SelectedBranch(r *http.Request) int64 {
	sess := internalshared.SessionFromContext(r.Context())
	if sess == nil {
		return 0
	}
	id, err := p.State.SelectedBranch(r.Context(), sess.ID)
	if err != nil {
		p.Logger.Warn("read selected branch", slog.Any("error", err))
		return 0
	}
	return id
}

// Render writes the named page template with the standard chrome data.
func (p *Page) Render(w http.ResponseWriter, r *http.Request, title, template string, data map[string]any, status int) {
	sess := internalshared.SessionFromContext(r.Context())
	csrfToken, _ := p.CSRF.EnsureToken(r.Context(), sess)
	var flash *internalshared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:          title,
		CSRFToken:      csrfToken,
		Flash:          flash,
		CurrentPath:    r.URL.Path,
		User:           p.CurrentUser(r),
		SelectedBranch: p.SelectedBranch(r),
		Data:           data,
	}
	if err := p.Templates.RenderStatus(w, status, template, viewData); err != nil {
		p.Logger.Error("render template", slog.Any("error", err))
	}
}

// RedirectWithFlash queues a toast on the session and redirects.
func (p *Page) RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := internalshared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(internalshared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
