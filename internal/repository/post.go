// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, search string, limit, offset int) ([]*models.Post, int64, error)
	GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IncrementViewCount(ctx context.Context, id uint) error
	AuthorStats(ctx context.Context, authorID uint) (postCount int64, totalViews int64, err error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// preloadAuthor narrows the author columns attached to post responses.
// Email, role, and timestamps stay out of the feed and post payloads.
func preloadAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "profile_img_url")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author", preloadAuthor).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns published posts newest-first, optionally filtered by a
// case-insensitive substring match over title or body, plus the total count
// for pagination.
func (r *postRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{}).Where("published = ?", true)
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		base = base.Where("LOWER(title) LIKE ? OR LOWER(body) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := base.
		Preload("Author", preloadAuthor).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := base.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// IncrementViewCount bumps the view counter atomically at the storage layer,
// avoiding the read-modify-write lost-update window.
func (r *postRepository) IncrementViewCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// AuthorStats returns the author's true post count and the sum of view
// counts across all of their posts.
func (r *postRepository) AuthorStats(ctx context.Context, authorID uint) (int64, int64, error) {
	var postCount int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&postCount).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}

	var totalViews int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&totalViews).Error
	if err != nil {
		return 0, 0, models.NewInternalError(err)
	}

	return postCount, totalViews, nil
}
