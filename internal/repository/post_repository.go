package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blog-engagement-api/internal/domain"
)

// PostFilter narrows a post listing
type PostFilter struct {
	Status   *domain.PostStatus
	AuthorID *uuid.UUID
	Search   string
	Offset   int
	Limit    int
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter PostFilter) ([]*domain.Post, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	CountByAuthor(ctx context.Context, authorID uuid.UUID, status domain.PostStatus) (int64, error)
	CountComments(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	ReconcileLikeCounts(ctx context.Context) (int64, error)
}

// postRepositoryImpl is the GORM implementation of PostRepository
type postRepositoryImpl struct {
	db *gorm.DB
}

// NewPostRepository creates a new instance of PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepositoryImpl{db: db}
}

// Create creates a new post
func (r *postRepositoryImpl) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID finds a post by ID with its author
func (r *postRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Exists reports whether a post with the given ID exists
func (r *postRepositoryImpl) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns a page of posts, newest first, with the total count for the filter
func (r *postRepositoryImpl) List(ctx context.Context, filter PostFilter) ([]*domain.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Post{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*domain.Post
	if err := query.
		Preload("Author").
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update applies column updates to a post. Counter columns are never accepted here.
func (r *postRepositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	delete(updates, "likes")
	delete(updates, "views")
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a post; comments and likes follow through the cascade
func (r *postRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementViews adds one view without touching updated_at
func (r *postRepositoryImpl) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// CountByAuthor counts an author's posts in the given status
func (r *postRepositoryImpl) CountByAuthor(ctx context.Context, authorID uuid.UUID, status domain.PostStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("author_id = ? AND status = ?", authorID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountComments returns the comment count per post for the given posts
func (r *postRepositoryImpl) CountComments(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uuid.UUID
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

// ReconcileLikeCounts rewrites posts.likes from the like rows wherever they
// disagree and returns how many posts were corrected. Each drifted post is
// locked the same way Toggle locks it and recounted inside that lock, so a
// toggle running alongside cannot leave a stale counter behind.
func (r *postRepositoryImpl) ReconcileLikeCounts(ctx context.Context) (int64, error) {
	var drifted []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("likes <> (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)").
		Pluck("id", &drifted).Error; err != nil {
		return 0, err
	}

	var repaired int64
	for _, postID := range drifted {
		fixed, err := r.reconcilePost(ctx, postID)
		if err != nil {
			return repaired, err
		}
		if fixed {
			repaired++
		}
	}
	return repaired, nil
}

func (r *postRepositoryImpl) reconcilePost(ctx context.Context, postID uuid.UUID) (bool, error) {
	fixed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lockQuery := tx.Select("id", "likes")
		if !isSQLite(tx) {
			lockQuery = lockQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var post domain.Post
		if err := lockQuery.Where("id = ?", postID).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		var count int64
		if err := tx.Model(&domain.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == post.Likes {
			return nil
		}

		if err := tx.Model(&domain.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes", count).Error; err != nil {
			return err
		}
		fixed = true
		return nil
	})
	return fixed, err
}
