package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/quillpost/quillpost-go/internal/model"
)

var postColumns = []string{"id", "title", "subtitle", "date", "body", "author_id", "author", "img_url"}

// PostRepository handles blog post persistence operations.
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post and sets the generated ID on the post struct.
// Title uniqueness and the author reference are enforced by the insert.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	query, args, err := builder.Insert("posts").
		Columns("title", "subtitle", "date", "body", "author_id", "author", "img_url").
		Values(post.Title, post.Subtitle, post.Date, post.Body, post.AuthorID, post.Author, post.ImgURL).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case isDuplicateEntryError(err):
			return ErrDuplicateTitle
		case isForeignKeyError(err):
			return ErrUserNotFound
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	post.ID = id
	return nil
}

// GetByID retrieves a post by its ID.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByTitle retrieves a post by its unique title.
func (r *PostRepository) GetByTitle(ctx context.Context, title string) (*model.Post, error) {
	return r.getOne(ctx, sq.Eq{"title": title})
}

func (r *PostRepository) getOne(ctx context.Context, where sq.Eq) (*model.Post, error) {
	query, args, err := builder.Select(postColumns...).From("posts").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	post := &model.Post{}
	if err := r.db.GetContext(ctx, post, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

// List retrieves every post in insertion order.
func (r *PostRepository) List(ctx context.Context) ([]model.Post, error) {
	return r.list(ctx, nil)
}

// ListByAuthor retrieves the posts whose author_id is authorID.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]model.Post, error) {
	return r.list(ctx, sq.Eq{"author_id": authorID})
}

func (r *PostRepository) list(ctx context.Context, where sq.Sqlizer) ([]model.Post, error) {
	q := builder.Select(postColumns...).From("posts").OrderBy("id")
	if where != nil {
		q = q.Where(where)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	posts := []model.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, err
	}

	return posts, nil
}

// Update overwrites the editable fields and the author of an existing post.
// ID and creation date are never changed.
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	query, args, err := builder.Update("posts").
		SetMap(map[string]any{
			"title":     post.Title,
			"subtitle":  post.Subtitle,
			"body":      post.Body,
			"img_url":   post.ImgURL,
			"author_id": post.AuthorID,
			"author":    post.Author,
		}).
		Where(sq.Eq{"id": post.ID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		switch {
		case isDuplicateEntryError(err):
			return ErrDuplicateTitle
		case isForeignKeyError(err):
			return ErrUserNotFound
		}
		return err
	}

	return expectOneRow(result, ErrPostNotFound)
}

// Delete permanently removes a post.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := builder.Delete("posts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return expectOneRow(result, ErrPostNotFound)
}
