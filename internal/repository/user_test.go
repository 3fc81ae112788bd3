package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpost/quillpost-go/internal/model"
	"github.com/quillpost/quillpost-go/internal/repository"
	"github.com/quillpost/quillpost-go/internal/testutil"
)

func newUser(email, name string) *model.User {
	return &model.User{Email: email, PasswordHash: "pbkdf2:sha256:1$salt$00", Name: name}
}

func TestUserRepository_Create(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	first := newUser("admin@example.com", "Admin")
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, int64(1), first.ID, "first user is the bootstrap administrator")

	second := newUser("reader@example.com", "Reader")
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, int64(2), second.ID)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("dup@example.com", "First")))

	err := repo.Create(ctx, newUser("dup@example.com", "Second"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "First", users[0].Name)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, newUser("race@example.com", "Racer"))
		}(i)
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, created)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_GetByEmailAndID(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	u := newUser("alice@example.com", "Alice")
	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, *u, *byEmail)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, *u, *byID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_ListEmpty(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepository_Update(t *testing.T) {
	repo := repository.NewUserRepository(testutil.NewDB(t))
	ctx := context.Background()

	alice := newUser("alice@example.com", "Alice")
	bob := newUser("bob@example.com", "Bob")
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	alice.Name = "Alice Liddell"
	require.NoError(t, repo.Update(ctx, alice))

	got, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", got.Name)

	bob.Email = "alice@example.com"
	assert.ErrorIs(t, repo.Update(ctx, bob), repository.ErrDuplicateEmail)

	missing := newUser("ghost@example.com", "Ghost")
	missing.ID = 999
	assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrUserNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	ctx := context.Background()

	author := newUser("author@example.com", "Author")
	lurker := newUser("lurker@example.com", "Lurker")
	require.NoError(t, users.Create(ctx, author))
	require.NoError(t, users.Create(ctx, lurker))
	require.NoError(t, posts.Create(ctx, newPost("Owned", author)))

	assert.ErrorIs(t, users.Delete(ctx, author.ID), repository.ErrUserHasPosts)

	require.NoError(t, users.Delete(ctx, lurker.ID))
	_, err := users.GetByID(ctx, lurker.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	assert.ErrorIs(t, users.Delete(ctx, lurker.ID), repository.ErrUserNotFound)
}
