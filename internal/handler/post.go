package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/quillpost/quillpost-go/internal/middleware"
	"github.com/quillpost/quillpost-go/internal/model"
	"github.com/quillpost/quillpost-go/internal/service"
	"github.com/quillpost/quillpost-go/internal/view"
)

// PostHandler handles HTTP requests for reading and managing posts.
type PostHandler struct {
	responder
	service *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService, views *view.Renderer, cookies Cookies) *PostHandler {
	return &PostHandler{
		responder: responder{views: views, cookies: cookies},
		service:   svc,
	}
}

// HandleIndex handles GET / requests.
func (h *PostHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "index.html", view.Data{Posts: posts})
}

// HandleShowPost handles GET /post/{id} requests.
func (h *PostHandler) HandleShowPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "post.html", view.Data{Title: post.Title, Post: post})
}

// HandleAuthor handles GET /author/{id} requests.
func (h *PostHandler) HandleAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	author, posts, err := h.service.ListByAuthor(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "author.html", view.Data{Title: author.Name, Author: author, Posts: posts})
}

// HandleNewPostForm handles GET /new-post requests.
func (h *PostHandler) HandleNewPostForm(w http.ResponseWriter, r *http.Request) {
	if service.RequireAdmin(middleware.IdentityFromContext(r.Context())) != service.Allowed {
		h.forbidden(w, r)
		return
	}

	h.render(w, r, http.StatusOK, "make-post.html", view.Data{Title: "New Post", Form: model.PostRequest{}})
}

// HandleCreatePost handles POST /new-post requests.
func (h *PostHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if service.RequireAdmin(identity) != service.Allowed {
		h.forbidden(w, r)
		return
	}

	req, ok := h.parsePostForm(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Create(r.Context(), identity, req); err != nil {
		h.postFormError(w, r, err, view.Data{Title: "New Post", Form: req})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleEditPostForm handles GET /edit-post/{id} requests.
func (h *PostHandler) HandleEditPostForm(w http.ResponseWriter, r *http.Request) {
	if service.RequireAdmin(middleware.IdentityFromContext(r.Context())) != service.Allowed {
		h.forbidden(w, r)
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "make-post.html", view.Data{
		Title:  "Edit Post",
		Form:   model.RequestFromPost(post),
		IsEdit: true,
	})
}

// HandleUpdatePost handles POST /edit-post/{id} requests.
func (h *PostHandler) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if service.RequireAdmin(identity) != service.Allowed {
		h.forbidden(w, r)
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	req, ok := h.parsePostForm(w, r)
	if !ok {
		return
	}

	post, err := h.service.Update(r.Context(), identity, id, req)
	if err != nil {
		h.postFormError(w, r, err, view.Data{Title: "Edit Post", Form: req, IsEdit: true})
		return
	}

	http.Redirect(w, r, "/post/"+strconv.FormatInt(post.ID, 10), http.StatusSeeOther)
}

// HandleDeletePost handles GET /delete/{id} requests.
func (h *PostHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if service.RequireAdmin(identity) != service.Allowed {
		h.forbidden(w, r)
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *PostHandler) parsePostForm(w http.ResponseWriter, r *http.Request) (model.PostRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "The form could not be read.")
		return model.PostRequest{}, false
	}

	return model.PostRequest{
		Title:    r.PostForm.Get("title"),
		Subtitle: r.PostForm.Get("subtitle"),
		ImgURL:   r.PostForm.Get("img_url"),
		Body:     r.PostForm.Get("body"),
	}, true
}

// postFormError answers a failed create or edit, re-rendering the form when
// the input can be corrected.
func (h *PostHandler) postFormError(w http.ResponseWriter, r *http.Request, err error, data view.Data) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		data.Errors = ve.Fields
		h.render(w, r, http.StatusBadRequest, "make-post.html", data)
	case errors.Is(err, service.ErrDuplicateTitle):
		data.Errors = map[string]string{"Title": err.Error()}
		h.render(w, r, http.StatusConflict, "make-post.html", data)
	case errors.Is(err, service.ErrPostNotFound):
		h.notFound(w, r)
	case errors.Is(err, service.ErrForbidden):
		h.forbidden(w, r)
	default:
		h.serverError(w, r, err)
	}
}
