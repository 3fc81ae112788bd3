package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/quillpost/quillpost-go/internal/model"
	"github.com/quillpost/quillpost-go/internal/repository"
)

// PostService handles the blog post lifecycle.
type PostService struct {
	posts *repository.PostRepository
	users *repository.UserRepository
	now   func() time.Time
}

// NewPostService creates a new PostService.
func NewPostService(posts *repository.PostRepository, users *repository.UserRepository) *PostService {
	return &PostService{posts: posts, users: users, now: time.Now}
}

// List returns every post.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.posts.List(ctx)
}

// Get returns one post.
func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, mapPostError(err)
	}
	return post, nil
}

// ListByAuthor returns the author and the posts they are credited with.
func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) (*model.User, []model.Post, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	posts, err := s.posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, nil, err
	}
	return author, posts, nil
}

// Create persists a new post authored by the administrator, dated today.
func (s *PostService) Create(ctx context.Context, identity model.Identity, req model.PostRequest) (*model.Post, error) {
	if RequireAdmin(identity) != Allowed {
		return nil, ErrForbidden
	}

	req = trimPostRequest(req)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Date:     s.now().Format(model.DateLayout),
		Body:     req.Body,
		AuthorID: identity.UserID,
		Author:   identity.Name,
		ImgURL:   req.ImgURL,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, mapPostError(err)
	}

	slog.Info("post created", "post_id", post.ID, "author_id", post.AuthorID)
	return post, nil
}

// Update rewrites a post's title, subtitle, image and body. Authorship moves
// to the editing identity; id and date are kept.
func (s *PostService) Update(ctx context.Context, identity model.Identity, id int64, req model.PostRequest) (*model.Post, error) {
	if RequireAdmin(identity) != Allowed {
		return nil, ErrForbidden
	}

	req = trimPostRequest(req)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, mapPostError(err)
	}

	post.Title = req.Title
	post.Subtitle = req.Subtitle
	post.ImgURL = req.ImgURL
	post.Body = req.Body
	post.AuthorID = identity.UserID
	post.Author = identity.Name

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, mapPostError(err)
	}

	slog.Info("post updated", "post_id", post.ID, "author_id", post.AuthorID)
	return post, nil
}

// Delete permanently removes a post.
func (s *PostService) Delete(ctx context.Context, identity model.Identity, id int64) error {
	if RequireAdmin(identity) != Allowed {
		return ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return mapPostError(err)
	}

	slog.Info("post deleted", "post_id", id)
	return nil
}

func trimPostRequest(req model.PostRequest) model.PostRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.Subtitle = strings.TrimSpace(req.Subtitle)
	req.ImgURL = strings.TrimSpace(req.ImgURL)
	return req
}

func mapPostError(err error) error {
	switch {
	case errors.Is(err, repository.ErrPostNotFound):
		return ErrPostNotFound
	case errors.Is(err, repository.ErrDuplicateTitle):
		return ErrDuplicateTitle
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	}
	return err
}
