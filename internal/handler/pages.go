package handler

import (
	"net/http"

	"github.com/quillpost/quillpost-go/internal/view"
)

// PageHandler serves the static informational pages.
type PageHandler struct {
	responder
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(views *view.Renderer, cookies Cookies) *PageHandler {
	return &PageHandler{responder: responder{views: views, cookies: cookies}}
}

// HandleAbout handles GET /about requests.
func (h *PageHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about.html", view.Data{Title: "About"})
}

// HandleContact handles GET /contact requests.
func (h *PageHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "contact.html", view.Data{Title: "Contact"})
}

// HandleNotFound answers unknown routes.
func (h *PageHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}

// HandleHealth handles GET /health requests.
func (h *PageHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
