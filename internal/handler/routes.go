package handler

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/quillpost/quillpost-go/internal/middleware"
)

// NewRouter mounts every blog route. Each request resolves its own session
// identity through resolver.
func NewRouter(auth *AuthHandler, posts *PostHandler, pages *PageHandler, resolver middleware.IdentityResolver) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", pages.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(resolver))
		r.NotFound(pages.HandleNotFound)

		r.Get("/", posts.HandleIndex)
		r.Get("/post/{id}", posts.HandleShowPost)
		r.Get("/author/{id}", posts.HandleAuthor)

		r.Get("/register", auth.HandleRegisterForm)
		r.Post("/register", auth.HandleRegister)
		r.Get("/login", auth.HandleLoginForm)
		r.Post("/login", auth.HandleLogin)
		r.Get("/logout", auth.HandleLogout)

		r.Get("/new-post", posts.HandleNewPostForm)
		r.Post("/new-post", posts.HandleCreatePost)
		r.Get("/edit-post/{id}", posts.HandleEditPostForm)
		r.Post("/edit-post/{id}", posts.HandleUpdatePost)
		r.Get("/delete/{id}", posts.HandleDeletePost)

		r.Get("/about", pages.HandleAbout)
		r.Get("/contact", pages.HandleContact)
	})

	return r
}
