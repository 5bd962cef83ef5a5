package service

import (
	"github.com/google/uuid"
)

// Live feed event types
const (
	EventCommentCreated = "comment.created"
	EventCommentDeleted = "comment.deleted"
	EventLikeToggled    = "like.toggled"
)

// EventPublisher fans post-scoped events out to live subscribers.
// Publish is called after the change is committed and must not block.
type EventPublisher interface {
	Publish(postID uuid.UUID, eventType string, payload interface{})
}

// publish is a nil-safe helper
func publish(p EventPublisher, postID uuid.UUID, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	p.Publish(postID, eventType, payload)
}
