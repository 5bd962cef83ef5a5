package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request to create a new comment
// @Description Request body for creating a comment on a post
// @Description parentId is optional; when set it must reference a comment on the same post
type CreateCommentRequest struct {
	PostID   uuid.UUID  `json:"postId" binding:"required" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Content  string     `json:"content" binding:"required,min=1,max=5000" example:"Great write-up, thanks!"`
	ParentID *uuid.UUID `json:"parentId,omitempty" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
}

// CommentResponse represents a comment annotated with its author
// @Description Flat comment entry; parentId is null for top-level comments
type CommentResponse struct {
	CommentID      uuid.UUID  `json:"id" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	PostID         uuid.UUID  `json:"postId"`
	UserID         uuid.UUID  `json:"userId"`
	ParentID       *uuid.UUID `json:"parentId"`
	Content        string     `json:"content"`
	AuthorUsername string     `json:"username" example:"jdoe"`
	AuthorName     string     `json:"fullName" example:"John Doe"`
	AuthorAvatar   *string    `json:"avatar,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// DeleteCommentResponse reports how many rows a delete removed
type DeleteCommentResponse struct {
	CommentID uuid.UUID `json:"commentId"`
	Removed   int64     `json:"removed" example:"3"`
}

// CommentNode is a comment with its direct replies
type CommentNode struct {
	CommentResponse
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree turns a flat, creation-ordered list into a forest.
// Order is preserved at every level. A comment whose parent is not in the
// list is treated as a root so nothing is dropped.
func BuildCommentTree(comments []CommentResponse) []*CommentNode {
	nodes := make(map[uuid.UUID]*CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].CommentID] = &CommentNode{
			CommentResponse: comments[i],
			Replies:         []*CommentNode{},
		}
	}

	roots := make([]*CommentNode, 0)
	for i := range comments {
		node := nodes[comments[i].CommentID]
		if comments[i].ParentID != nil {
			if parent, ok := nodes[*comments[i].ParentID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
