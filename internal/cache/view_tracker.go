package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	viewKeyPrefix     = "blog:views"
	DefaultViewWindow = 30 * time.Minute
)

// ViewTracker decides whether a post view should be counted
type ViewTracker interface {
	// ShouldCount reports true the first time viewerKey sees postID within the window
	ShouldCount(ctx context.Context, postID uuid.UUID, viewerKey string) (bool, error)
}

// redisViewTracker remembers recent viewers with SETNX keys that expire after the window
type redisViewTracker struct {
	client *redis.Client
	window time.Duration
}

// NewRedisViewTracker creates a ViewTracker backed by redis
func NewRedisViewTracker(client *redis.Client, window time.Duration) ViewTracker {
	if window <= 0 {
		window = DefaultViewWindow
	}
	return &redisViewTracker{client: client, window: window}
}

func (t *redisViewTracker) ShouldCount(ctx context.Context, postID uuid.UUID, viewerKey string) (bool, error) {
	if viewerKey == "" {
		return true, nil
	}
	ok, err := t.client.SetNX(ctx, viewKey(postID, viewerKey), 1, t.window).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func viewKey(postID uuid.UUID, viewerKey string) string {
	return fmt.Sprintf("%s:%s:%s", viewKeyPrefix, postID, viewerKey)
}

// countEveryView counts every request; used when redis is not configured
type countEveryView struct{}

// NewCountEveryView returns a ViewTracker without de-duplication
func NewCountEveryView() ViewTracker {
	return countEveryView{}
}

func (countEveryView) ShouldCount(context.Context, uuid.UUID, string) (bool, error) {
	return true, nil
}
