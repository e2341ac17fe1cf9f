package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPostTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))
	return db
}

func createTestAuthor(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$12$hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPostRepository_CreateAndGetByID(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "alice")

	post := &models.Post{
		Title:     "My first post",
		Body:      "Enough body text to pass.",
		AuthorID:  author.ID,
		Published: true,
	}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "My first post", got.Title)
	if assert.NotNil(t, got.Author) {
		assert.Equal(t, "alice", got.Author.Username)
		// Only the public author columns ride along with a post.
		assert.Empty(t, got.Author.Email)
		assert.Empty(t, got.Author.Role)
		assert.True(t, got.Author.CreatedAt.IsZero())
	}
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_List(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "alice")

	// Seed eight published posts with distinct timestamps plus one unpublished.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 8; i++ {
		post := &models.Post{
			Title:     fmt.Sprintf("Published post %d", i),
			Body:      "Body of the published post.",
			AuthorID:  author.ID,
			Published: true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}
	draft := &models.Post{
		Title:     "Hidden draft post",
		Body:      "This one is not published.",
		AuthorID:  author.ID,
		Published: false,
	}
	require.NoError(t, db.Create(draft).Error)

	t.Run("Excludes unpublished and counts total", func(t *testing.T) {
		posts, total, err := repo.List(ctx, "", 6, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(8), total)
		assert.Len(t, posts, 6)
	})

	t.Run("Newest first", func(t *testing.T) {
		posts, _, err := repo.List(ctx, "", 3, 0)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, "Published post 7", posts[0].Title)
		assert.Equal(t, "Published post 6", posts[1].Title)
	})

	t.Run("Feed authors carry public columns only", func(t *testing.T) {
		posts, _, err := repo.List(ctx, "", 1, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		if assert.NotNil(t, posts[0].Author) {
			assert.Equal(t, "alice", posts[0].Author.Username)
			assert.Empty(t, posts[0].Author.Email)
		}
	})

	t.Run("Second page offset", func(t *testing.T) {
		posts, total, err := repo.List(ctx, "", 6, 6)
		require.NoError(t, err)
		assert.Equal(t, int64(8), total)
		assert.Len(t, posts, 2)
	})

	t.Run("Search matches title case-insensitively", func(t *testing.T) {
		posts, total, err := repo.List(ctx, "PUBLISHED POST 3", 6, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, posts, 1)
		assert.Equal(t, "Published post 3", posts[0].Title)
	})

	t.Run("Search matches body", func(t *testing.T) {
		_, total, err := repo.List(ctx, "body of the", 6, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(8), total)
	})

	t.Run("Search with no matches", func(t *testing.T) {
		posts, total, err := repo.List(ctx, "zzz-no-such-term", 6, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, posts)
	})
}

func TestPostRepository_UnpublishedStaysUnpublished(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "alice")

	draft := &models.Post{
		Title:     "Quiet draft post",
		Body:      "Not ready for the feed yet.",
		AuthorID:  author.ID,
		Published: false,
	}
	require.NoError(t, repo.Create(ctx, draft))

	// The false value survives storage and the reload.
	got, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.False(t, got.Published)

	posts, total, err := repo.List(ctx, "", 6, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
}

func TestPostRepository_IncrementViewCount(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "alice")

	post := &models.Post{Title: "Counted post", Body: "Some body text here.", AuthorID: author.ID, Published: true}
	require.NoError(t, repo.Create(ctx, post))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementViewCount(ctx, post.ID))
	}

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ViewCount)
	// UpdatedAt is untouched by the counter bump.
	assert.WithinDuration(t, post.UpdatedAt, got.UpdatedAt, time.Second)
}

func TestPostRepository_AuthorStats(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createTestAuthor(t, db, "alice")
	bob := createTestAuthor(t, db, "bob")

	for i, views := range []int64{5, 10, 0} {
		post := &models.Post{
			Title:     fmt.Sprintf("Alice post %d", i),
			Body:      "Body text long enough.",
			AuthorID:  alice.ID,
			Published: true,
			ViewCount: views,
		}
		require.NoError(t, db.Create(post).Error)
	}

	count, views, err := repo.AuthorStats(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, int64(15), views)

	count, views, err = repo.AuthorStats(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, views)
}

func TestPostRepository_GetByAuthorID(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createTestAuthor(t, db, "alice")
	bob := createTestAuthor(t, db, "bob")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		post := &models.Post{
			Title:     fmt.Sprintf("Alice post %d", i),
			Body:      "Body text long enough.",
			AuthorID:  alice.ID,
			Published: true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}
	require.NoError(t, db.Create(&models.Post{
		Title: "Bob post", Body: "Body text long enough.", AuthorID: bob.ID, Published: true,
	}).Error)

	posts, total, err := repo.GetByAuthorID(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, posts, 10)
	assert.Equal(t, "Alice post 11", posts[0].Title)
	for _, p := range posts {
		assert.Equal(t, alice.ID, p.AuthorID)
	}
}

func TestPostRepository_Delete(t *testing.T) {
	db := setupPostTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "alice")

	post := &models.Post{Title: "Doomed post", Body: "Body text long enough.", AuthorID: author.ID, Published: true}
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	// Deleted posts no longer appear in the feed or in author stats.
	_, total, err := repo.List(ctx, "", 6, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	count, _, err := repo.AuthorStats(ctx, author.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
