package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PostService implements post CRUD with ownership checks.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	AuthorID      uint
	Title         string
	Body          string
	CoverImageURL string
	Tags          string
}

// UpdatePostInput carries the fields for a post edit.
type UpdatePostInput struct {
	PostID        uint
	RequesterID   uint
	Title         string
	Body          string
	CoverImageURL string
}

// ListPostsInput is the paginated, searchable feed query.
type ListPostsInput struct {
	Page   int
	Limit  int
	Search string
}

// ListPostsResult is one page of the public feed.
type ListPostsResult struct {
	Posts      []*models.Post    `json:"posts"`
	Pagination models.Pagination `json:"pagination"`
}

const (
	defaultPageLimit = 6
	maxPageLimit     = 100
)

// List returns published posts, newest first, with pagination metadata.
func (s *PostService) List(ctx context.Context, in ListPostsInput) (*ListPostsResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := (page - 1) * limit

	posts, total, err := s.postRepo.List(ctx, in.Search, limit, offset)
	if err != nil {
		return nil, err
	}

	return &ListPostsResult{
		Posts:      posts,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// Get fetches a post by ID and increments its view counter as a side effect
// of the read. The returned representation reflects the increment.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.IncrementViewCount(ctx, id); err != nil {
		return nil, err
	}
	post.ViewCount++

	return post, nil
}

// Create validates and stores a new post owned by the author.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostBody(in.Body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:         in.Title,
		Body:          in.Body,
		CoverImageURL: in.CoverImageURL,
		AuthorID:      in.AuthorID,
		Published:     true,
		Tags:          in.Tags,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with the author preloaded for the response.
	return s.postRepo.GetByID(ctx, post.ID)
}

// Update edits a post after the ownership check passes. The author field is
// immutable; only the owner may mutate, and the ownership comparison is a
// typed ID equality.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostBody(in.Body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.RequesterID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	post.Title = in.Title
	post.Body = in.Body
	if in.CoverImageURL != "" {
		post.CoverImageURL = in.CoverImageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post after the ownership check passes.
func (s *PostService) Delete(ctx context.Context, postID, requesterID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != requesterID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, postID)
}

// GetByAuthor returns one page of a single author's posts.
func (s *PostService) GetByAuthor(ctx context.Context, authorID uint, page, limit int) (*ListPostsResult, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := (page - 1) * limit

	posts, total, err := s.postRepo.GetByAuthorID(ctx, authorID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &ListPostsResult{
		Posts:      posts,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}
