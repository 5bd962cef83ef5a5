package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog-engagement-api/internal/domain"
)

// ToggleResult is the state of a like after Toggle
type ToggleResult struct {
	Liked     bool
	LikeCount int64
}

// LikeRepository defines the interface for like data access
type LikeRepository interface {
	Toggle(ctx context.Context, userID, postID uuid.UUID) (*ToggleResult, error)
	Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	CountByPost(ctx context.Context, postID uuid.UUID) (int64, error)
}

// likeRepositoryImpl is the GORM implementation of LikeRepository
type likeRepositoryImpl struct {
	db *gorm.DB
}

// NewLikeRepository creates a new instance of LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepositoryImpl{db: db}
}

// Toggle flips the like of userID on postID. The post row is locked for the
// duration of the transaction so the row change and the counter change are
// applied together. Returns gorm.ErrRecordNotFound when the post is missing
// and a duplicate key error when a concurrent insert won the unique index.
func (r *likeRepositoryImpl) Toggle(ctx context.Context, userID, postID uuid.UUID) (*ToggleResult, error) {
	var result ToggleResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lockQuery := tx.Select("id", "likes")
		if !isSQLite(tx) {
			lockQuery = lockQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var post domain.Post
		if err := lockQuery.Where("id = ?", postID).First(&post).Error; err != nil {
			return err
		}

		deleted := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&domain.Like{})
		if deleted.Error != nil {
			return deleted.Error
		}

		delta := -1
		if deleted.RowsAffected == 0 {
			if err := tx.Create(&domain.Like{UserID: userID, PostID: postID}).Error; err != nil {
				return err
			}
			delta = 1
		}

		if err := tx.Model(&domain.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error; err != nil {
			return err
		}

		var updated domain.Post
		if err := tx.Select("id", "likes").Where("id = ?", postID).First(&updated).Error; err != nil {
			return err
		}

		result = ToggleResult{Liked: delta > 0, LikeCount: updated.Likes}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Exists reports whether userID likes postID
func (r *likeRepositoryImpl) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByPost counts like rows of a post
func (r *likeRepositoryImpl) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
