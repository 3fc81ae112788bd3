package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/quillpost/quillpost-go/internal/model"
)

var userColumns = []string{"id", "email", "password_hash", "name"}

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
// Email uniqueness is enforced by the insert itself.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query, args, err := builder.Insert("users").
		Columns("email", "password_hash", "name").
		Values(user.Email, user.PasswordHash, user.Name).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, where sq.Eq) (*model.User, error) {
	query, args, err := builder.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	if err := r.db.GetContext(ctx, user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// List retrieves every user ordered by ID.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query, args, err := builder.Select(userColumns...).From("users").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	users := []model.User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}

	return users, nil
}

// Update overwrites the email, password hash and name of an existing user.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query, args, err := builder.Update("users").
		SetMap(map[string]any{
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"name":          user.Name,
		}).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return expectOneRow(result, ErrUserNotFound)
}

// Delete removes a user. Users that still own posts cannot be deleted.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := builder.Delete("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrUserHasPosts
		}
		return err
	}

	return expectOneRow(result, ErrUserNotFound)
}

// expectOneRow returns notFound when a statement matched no rows.
func expectOneRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
