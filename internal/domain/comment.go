package domain

import "github.com/google/uuid"

// Comment represents a comment on a post.
// Threading is stored as a flat parent pointer; ParentID is nil for top-level comments.
type Comment struct {
	BaseModel
	PostID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_post_id" json:"postId"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"userId"`
	ParentID *uuid.UUID `gorm:"type:uuid;index:idx_comments_parent_id" json:"parentId"`
	Content  string     `gorm:"type:text;not null" json:"content"`
	Post     Post       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User     User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Parent   *Comment   `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// IsReply reports whether the comment answers another comment
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
