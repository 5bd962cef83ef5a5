package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PostStatus represents the publication state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// IsValid reports whether s is a known status
func (s PostStatus) IsValid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post represents a blog article owned by exactly one user.
// Views and Likes are counters maintained by the repository layer only.
type Post struct {
	BaseModel
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Excerpt       *string        `gorm:"type:text" json:"excerpt,omitempty"`
	FeaturedImage *string        `gorm:"type:varchar(255)" json:"featuredImage,omitempty"`
	AuthorID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_posts_author_id" json:"authorId"`
	Status        PostStatus     `gorm:"type:varchar(10);not null;default:'draft';index:idx_posts_status" json:"status"`
	Views         int64          `gorm:"not null;default:0" json:"views"`
	Likes         int64          `gorm:"not null;default:0" json:"likes"`
	Tags          datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	Author        User           `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}
