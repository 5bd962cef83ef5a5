package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blog-engagement-api/internal/domain"
)

func TestUserRepository_Lookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice", domain.RoleUser)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", domain.RoleUser)

	err := repo.Create(ctx, &domain.User{Username: "alice", Email: "other@example.com", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, IsDuplicateError(err))
}

func TestUserRepository_FindFirstAdmin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.FindFirstAdmin(ctx)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	seedUser(t, db, "reader", domain.RoleUser)
	admin := seedUser(t, db, "admin", domain.RoleAdmin)

	found, err := repo.FindFirstAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.ID)
}

func TestUserRepository_ListAndRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := seedUser(t, db, "first", domain.RoleUser)
	seedUser(t, db, "second", domain.RoleUser)

	users, total, err := repo.List(ctx, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 1)

	require.NoError(t, repo.UpdateRole(ctx, first.ID, domain.RoleAdmin))
	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, found.Role)

	assert.True(t, errors.Is(repo.UpdateRole(ctx, uuid.New(), domain.RoleAdmin), gorm.ErrRecordNotFound))
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice", domain.RoleUser)
	bio := "writes about Go"
	user.FullName = "Alice Liddell"
	user.Bio = &bio
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", found.FullName)
	require.NotNil(t, found.Bio)
	assert.Equal(t, bio, *found.Bio)
}

func TestUserRepository_DeleteCascadesAndKeepsCounters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	likes := NewLikeRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author", domain.RoleUser)
	leaving := seedUser(t, db, "leaving", domain.RoleUser)
	stays := seedUser(t, db, "stays", domain.RoleUser)

	post := seedPost(t, db, author, "post", domain.PostStatusPublished)
	ownPost := seedPost(t, db, leaving, "own", domain.PostStatusPublished)

	_, err := likes.Toggle(ctx, leaving.ID, post.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, stays.ID, post.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(ctx, leaving.ID, ownPost.ID)
	require.NoError(t, err)

	now := time.Now().UTC()
	seedComment(t, db, post, leaving, nil, now)
	seedComment(t, db, ownPost, stays, nil, now)

	require.NoError(t, repo.Delete(ctx, leaving.ID))

	var stored domain.Post
	require.NoError(t, db.First(&stored, "id = ?", post.ID).Error)
	assert.Equal(t, int64(1), stored.Likes)

	rows, err := likes.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Likes, rows)

	var leftover int64
	db.Model(&domain.Post{}).Where("author_id = ?", leaving.ID).Count(&leftover)
	assert.Zero(t, leftover)
	db.Model(&domain.Comment{}).Where("user_id = ?", leaving.ID).Count(&leftover)
	assert.Zero(t, leftover)
	db.Model(&domain.Like{}).Where("user_id = ?", leaving.ID).Count(&leftover)
	assert.Zero(t, leftover)
	// the comment on the deleted user's post is gone with the post
	assert.Zero(t, countRows(t, db, &domain.Comment{}))

	assert.True(t, errors.Is(repo.Delete(ctx, leaving.ID), gorm.ErrRecordNotFound))
}
