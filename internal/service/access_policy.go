package service

import (
	"context"

	"github.com/google/uuid"

	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/repository"
	"blog-engagement-api/internal/response"
)

// CanMutate reports whether actor may change or remove a resource owned by ownerID.
// Owners may always act on their own resources; admins may act on anything.
func CanMutate(actorID, ownerID uuid.UUID, actorRole domain.Role) bool {
	if actorRole == domain.RoleAdmin {
		return true
	}
	return actorID != uuid.Nil && actorID == ownerID
}

// findVisiblePost loads a post the actor is allowed to see. Drafts of other
// authors are reported as missing so their existence does not leak.
func findVisiblePost(ctx context.Context, posts repository.PostRepository, actor Actor, postID uuid.UUID) (*domain.Post, error) {
	post, err := posts.FindByID(ctx, postID)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to fetch post")
	}
	if !actor.CanView(post) {
		return nil, response.NewNotFoundError("Post not found", "")
	}
	return post, nil
}
