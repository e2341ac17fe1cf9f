package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a published blog entry.
type Post struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"size:100;not null" json:"title"`
	Body          string         `gorm:"type:text;not null" json:"body"`
	CoverImageURL string         `json:"coverImageURL,omitempty"`
	AuthorID      uint           `gorm:"not null;index:idx_posts_author_created" json:"author_id"`
	Author        *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	// No column default: a default tag would make GORM skip the field on
	// insert when it is false, silently publishing drafts. Callers set it.
	Published     bool           `gorm:"not null" json:"published"`
	Tags          string         `gorm:"size:500" json:"tags,omitempty"`
	ViewCount     int64          `gorm:"not null;default:0" json:"viewCount"`
	CreatedAt     time.Time      `gorm:"index:idx_posts_author_created" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Excerpt returns the beginning of the body for list views.
func (p *Post) Excerpt() string {
	const max = 150
	if len(p.Body) <= max {
		return p.Body
	}
	return p.Body[:max] + "..."
}

// Pagination describes one page of a paginated collection.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination computes page arithmetic for a collection of total items.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalPosts:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
