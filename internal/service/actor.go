package service

import (
	"github.com/google/uuid"

	"blog-engagement-api/internal/domain"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

// Anonymous is the actor of unauthenticated requests
var Anonymous = Actor{}

// IsAuthenticated reports whether the actor carries an identity
func (a Actor) IsAuthenticated() bool {
	return a.ID != uuid.Nil
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

// Can reports whether the actor may mutate something owned by ownerID
func (a Actor) Can(ownerID uuid.UUID) bool {
	return CanMutate(a.ID, ownerID, a.Role)
}

// CanView reports whether the actor may see a post. Drafts are visible to
// their author and admins only.
func (a Actor) CanView(post *domain.Post) bool {
	return post.Status == domain.PostStatusPublished || a.Can(post.AuthorID)
}
