package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quillpost/quillpost-go/internal/middleware"
	"github.com/quillpost/quillpost-go/internal/service"
	"github.com/quillpost/quillpost-go/internal/view"
)

const flashCookieName = "flash"

// Cookies configures the cookies the handlers issue.
type Cookies struct {
	Secure     bool
	SessionTTL time.Duration
}

// responder renders pages and manages the session and flash cookies.
type responder struct {
	views   *view.Renderer
	cookies Cookies
}

// render fills in the request identity and any pending flash notice, then
// writes the page. A pending flash is consumed even when the handler set its
// own notice.
func (rs responder) render(w http.ResponseWriter, r *http.Request, status int, page string, data view.Data) {
	data.Identity = middleware.IdentityFromContext(r.Context())
	data.IsAdmin = service.RequireAdmin(data.Identity) == service.Allowed
	if flash := rs.popFlash(w, r); data.Notice == "" {
		data.Notice = flash
	}

	if err := rs.views.Render(w, status, page, data); err != nil {
		slog.Error("render failed", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (rs responder) errorPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	rs.render(w, r, status, "error.html", view.Data{
		Title:   http.StatusText(status),
		Status:  status,
		Message: msg,
	})
}

func (rs responder) notFound(w http.ResponseWriter, r *http.Request) {
	rs.errorPage(w, r, http.StatusNotFound, "The page you asked for does not exist.")
}

func (rs responder) forbidden(w http.ResponseWriter, r *http.Request) {
	rs.errorPage(w, r, http.StatusForbidden, "Only the administrator can do that.")
}

func (rs responder) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	rs.errorPage(w, r, http.StatusInternalServerError, "Something went wrong.")
}

func (rs responder) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(rs.cookies.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   rs.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (rs responder) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   rs.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// setFlash stores a one-time notice shown by the next rendered page.
func (rs responder) setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		Secure:   rs.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (rs responder) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   rs.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}

// idParam parses a positive integer path parameter.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
