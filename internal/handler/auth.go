package handler

import (
	"errors"
	"net/http"

	"github.com/quillpost/quillpost-go/internal/model"
	"github.com/quillpost/quillpost-go/internal/service"
	"github.com/quillpost/quillpost-go/internal/view"
)

const (
	noticeEmailTaken    = "You've already signed up with that email, log in instead!"
	noticeEmailNotFound = "That email does not exist, please try again."
	noticeWrongPassword = "Password incorrect, please try again."
)

const maxFormBytes = 1 << 20 // 1MB

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	responder
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, views *view.Renderer, cookies Cookies) *AuthHandler {
	return &AuthHandler{
		responder: responder{views: views, cookies: cookies},
		service:   svc,
	}
}

// HandleRegisterForm handles GET /register requests.
func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register.html", view.Data{Title: "Register", Form: model.RegisterRequest{}})
}

// HandleRegister handles POST /register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}

	req := model.RegisterRequest{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
		Name:     r.PostForm.Get("name"),
	}

	session, err := h.service.Register(r.Context(), req)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			req.Password = ""
			h.render(w, r, http.StatusBadRequest, "register.html", view.Data{Title: "Register", Form: req, Errors: ve.Fields})
		case errors.Is(err, service.ErrDuplicateEmail):
			h.setFlash(w, noticeEmailTaken)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			h.serverError(w, r, err)
		}
		return
	}

	h.setSession(w, session.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLoginForm handles GET /login requests.
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", view.Data{Title: "Log In", Form: model.LoginRequest{}})
}

// HandleLogin handles POST /login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}

	req := model.LoginRequest{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}

	session, err := h.service.Login(r.Context(), req)
	if err != nil {
		req.Password = ""
		data := view.Data{Title: "Log In", Form: req}

		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			data.Errors = ve.Fields
			h.render(w, r, http.StatusBadRequest, "login.html", data)
		case errors.Is(err, service.ErrUserNotFound):
			data.Notice = noticeEmailNotFound
			h.render(w, r, http.StatusUnauthorized, "login.html", data)
		case errors.Is(err, service.ErrInvalidPassword):
			data.Notice = noticeWrongPassword
			h.render(w, r, http.StatusUnauthorized, "login.html", data)
		default:
			h.serverError(w, r, err)
		}
		return
	}

	h.setSession(w, session.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout handles GET /logout requests. It always succeeds.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
