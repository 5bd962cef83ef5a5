package dto

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comment(id uuid.UUID, parent *uuid.UUID, offset int) CommentResponse {
	return CommentResponse{
		CommentID: id,
		ParentID:  parent,
		Content:   id.String(),
		CreatedAt: time.Unix(1700000000, 0).Add(time.Duration(offset) * time.Second),
	}
}

func TestBuildCommentTree(t *testing.T) {
	root1, root2 := uuid.New(), uuid.New()
	child1, child2 := uuid.New(), uuid.New()
	grandchild := uuid.New()

	flat := []CommentResponse{
		comment(root1, nil, 0),
		comment(child1, &root1, 1),
		comment(root2, nil, 2),
		comment(grandchild, &child1, 3),
		comment(child2, &root1, 4),
	}

	tree := BuildCommentTree(flat)

	require.Len(t, tree, 2)
	assert.Equal(t, root1, tree[0].CommentID)
	assert.Equal(t, root2, tree[1].CommentID)

	require.Len(t, tree[0].Replies, 2)
	assert.Equal(t, child1, tree[0].Replies[0].CommentID)
	assert.Equal(t, child2, tree[0].Replies[1].CommentID)

	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, grandchild, tree[0].Replies[0].Replies[0].CommentID)
	assert.Empty(t, tree[1].Replies)
}

func TestBuildCommentTree_OrphanBecomesRoot(t *testing.T) {
	missing := uuid.New()
	orphan := uuid.New()

	tree := BuildCommentTree([]CommentResponse{comment(orphan, &missing, 0)})

	require.Len(t, tree, 1)
	assert.Equal(t, orphan, tree[0].CommentID)
}

func TestBuildCommentTree_Empty(t *testing.T) {
	tree := BuildCommentTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestCreateCommentRequest_Validation(t *testing.T) {
	parent := uuid.New()

	tests := []struct {
		name    string
		req     CreateCommentRequest
		wantErr bool
	}{
		{"성공: 최상위 댓글", CreateCommentRequest{PostID: uuid.New(), Content: "hello"}, false},
		{"성공: 답글", CreateCommentRequest{PostID: uuid.New(), Content: "hi", ParentID: &parent}, false},
		{"실패: postId 누락", CreateCommentRequest{Content: "hello"}, true},
		{"실패: 빈 내용", CreateCommentRequest{PostID: uuid.New()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
