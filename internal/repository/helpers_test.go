package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blog-engagement-api/internal/database"
	"blog-engagement-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLite("")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		FullName:     username + " full",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, author *domain.User, title string, status domain.PostStatus) *domain.Post {
	t.Helper()
	post := &domain.Post{
		Title:    title,
		Content:  "content of " + title,
		AuthorID: author.ID,
		Status:   status,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// seedComment sets CreatedAt explicitly so ordering assertions are deterministic
func seedComment(t *testing.T, db *gorm.DB, post *domain.Post, user *domain.User, parent *domain.Comment, at time.Time) *domain.Comment {
	t.Helper()
	comment := &domain.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: "comment",
	}
	comment.CreatedAt = at
	comment.UpdatedAt = at
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
