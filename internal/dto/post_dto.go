package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreatePostRequest represents the request to create a post
// @Description Request body for creating a post. status defaults to draft.
// @Description excerpt defaults to the first 150 characters of the text content
type CreatePostRequest struct {
	Title         string   `json:"title" binding:"required,min=1,max=255" example:"Structured logging in Go"`
	Content       string   `json:"content" binding:"required,min=1" example:"<p>zap is fast.</p>"`
	Excerpt       *string  `json:"excerpt,omitempty" binding:"omitempty,max=500"`
	FeaturedImage *string  `json:"featuredImage,omitempty" binding:"omitempty,max=255"`
	Status        string   `json:"status,omitempty" binding:"omitempty,oneof=draft published" example:"published"`
	Tags          []string `json:"tags,omitempty" binding:"omitempty,max=20,dive,min=1,max=30" example:"go,logging"`
}

// UpdatePostRequest represents the request to update a post. All fields are optional.
type UpdatePostRequest struct {
	Title         *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Content       *string  `json:"content" binding:"omitempty,min=1"`
	Excerpt       *string  `json:"excerpt" binding:"omitempty,max=500"`
	FeaturedImage *string  `json:"featuredImage" binding:"omitempty,max=255"`
	Status        *string  `json:"status" binding:"omitempty,oneof=draft published"`
	Tags          []string `json:"tags" binding:"omitempty,max=20,dive,min=1,max=30"`
}

// PostResponse represents a post with its author and engagement counts
type PostResponse struct {
	PostID        uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Excerpt       *string       `json:"excerpt,omitempty"`
	FeaturedImage *string       `json:"featuredImage,omitempty"`
	Status        string        `json:"status"`
	Tags          []string      `json:"tags"`
	Views         int64         `json:"views"`
	Likes         int64         `json:"likes"`
	CommentCount  int64         `json:"commentCount"`
	Author        AuthorSummary `json:"author"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// PaginatedPostsResponse represents a page of posts
type PaginatedPostsResponse struct {
	Posts      []PostResponse `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}
