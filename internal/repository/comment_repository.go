package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog-engagement-api/internal/domain"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	DeleteSubtree(ctx context.Context, id uuid.UUID) (int64, error)
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// ErrParentOnOtherPost is returned by Create when the parent comment belongs to another post
var ErrParentOnOtherPost = errors.New("parent comment belongs to a different post")

// Create inserts a comment after re-checking, in the same transaction, that
// the post exists and that the parent (if any) exists on that post. Both rows
// are held with FOR KEY SHARE on postgres so they cannot be deleted before
// the insert commits. A missing post or parent returns gorm.ErrRecordNotFound.
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post domain.Post
		if err := keyShare(tx).Select("id").Where("id = ?", comment.PostID).First(&post).Error; err != nil {
			return err
		}

		if comment.ParentID != nil {
			var parent domain.Comment
			if err := keyShare(tx).Select("id", "post_id").Where("id = ?", *comment.ParentID).First(&parent).Error; err != nil {
				return err
			}
			if parent.PostID != comment.PostID {
				return ErrParentOnOtherPost
			}
		}

		return tx.Create(comment).Error
	})
}

// keyShare locks the selected rows against deletion without blocking
// counter updates on them
func keyShare(tx *gorm.DB) *gorm.DB {
	if isSQLite(tx) {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "KEY SHARE"})
}

// FindByID finds a comment by ID
func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns every comment of a post with its author, in creation order.
// Ids are time ordered, so they break ties between equal timestamps.
func (r *commentRepositoryImpl) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

const subtreeQuery = `
WITH RECURSIVE subtree(id) AS (
	SELECT id FROM comments WHERE id = ?
	UNION ALL
	SELECT c.id FROM comments c JOIN subtree s ON c.parent_id = s.id
)
SELECT id FROM subtree`

// DeleteSubtree removes a comment and every reply below it in one transaction
// and returns the number of comments removed
func (r *commentRepositoryImpl) DeleteSubtree(ctx context.Context, id uuid.UUID) (int64, error) {
	var removed int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := collectSubtree(tx, id)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return gorm.ErrRecordNotFound
		}

		result := tx.Where("id IN ?", ids).Delete(&domain.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// cascaded rows are not reported by every driver, the collected set is
		removed = int64(len(ids))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func collectSubtree(tx *gorm.DB, id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.Raw(subtreeQuery, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var commentID uuid.UUID
		if err := rows.Scan(&commentID); err != nil {
			return nil, err
		}
		ids = append(ids, commentID)
	}
	return ids, rows.Err()
}
