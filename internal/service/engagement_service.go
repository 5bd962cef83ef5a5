package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blog-engagement-api/internal/client"
	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/metrics"
	"blog-engagement-api/internal/repository"
	"blog-engagement-api/internal/response"
)

// EngagementService defines the interface for like business logic
type EngagementService interface {
	ToggleLike(ctx context.Context, actor Actor, postID uuid.UUID) (*dto.LikeToggleResponse, error)
	GetLikeStatus(ctx context.Context, actor Actor, postID uuid.UUID) (*dto.LikeToggleResponse, error)
}

// engagementServiceImpl is the implementation of EngagementService
type engagementServiceImpl struct {
	likeRepo  repository.LikeRepository
	postRepo  repository.PostRepository
	notifier  client.NotificationClient
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewEngagementService creates a new instance of EngagementService
func NewEngagementService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	notifier client.NotificationClient,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) EngagementService {
	if notifier == nil {
		notifier = client.NewNoOpNotificationClient()
	}
	return &engagementServiceImpl{
		likeRepo:  likeRepo,
		postRepo:  postRepo,
		notifier:  notifier,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// ToggleLike flips the caller's like on a post and returns the new state.
// A concurrent insert that wins the unique (user, post) index surfaces as a
// duplicate key error; the toggle is then applied once more, which removes
// the winning row.
func (s *engagementServiceImpl) ToggleLike(ctx context.Context, actor Actor, postID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, response.NewUnauthorizedError("Authentication required", "")
	}
	userID := actor.ID

	post, err := findVisiblePost(ctx, s.postRepo, actor, postID)
	if err != nil {
		return nil, err
	}

	result, err := s.likeRepo.Toggle(ctx, userID, postID)
	if repository.IsDuplicateError(err) {
		s.logger.Debug("Concurrent like insert detected, retrying toggle",
			zap.String("user_id", userID.String()),
			zap.String("post_id", postID.String()))
		result, err = s.likeRepo.Toggle(ctx, userID, postID)
	}
	if err != nil {
		s.logger.Warn("Failed to toggle like",
			zap.String("user_id", userID.String()),
			zap.String("post_id", postID.String()),
			zap.Error(err))
		return nil, storeError(err, "Post not found", "Failed to toggle like")
	}

	if s.metrics != nil {
		s.metrics.RecordLikeToggle(result.Liked)
	}

	resp := &dto.LikeToggleResponse{
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
	}

	publish(s.publisher, postID, EventLikeToggled, map[string]interface{}{
		"postId":    postID,
		"userId":    userID,
		"liked":     resp.Liked,
		"likeCount": resp.LikeCount,
	})

	if result.Liked {
		s.notifyPostLiked(ctx, userID, post)
	}

	return resp, nil
}

// GetLikeStatus returns whether the caller likes a post and its current count
func (s *engagementServiceImpl) GetLikeStatus(ctx context.Context, actor Actor, postID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, response.NewUnauthorizedError("Authentication required", "")
	}

	post, err := findVisiblePost(ctx, s.postRepo, actor, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Exists(ctx, actor.ID, postID)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to fetch like status")
	}

	return &dto.LikeToggleResponse{
		Liked:     liked,
		LikeCount: post.Likes,
	}, nil
}

// notifyPostLiked tells the post author about a new like. Failures are logged only.
func (s *engagementServiceImpl) notifyPostLiked(ctx context.Context, userID uuid.UUID, post *domain.Post) {
	event := client.NotificationEvent{
		Type:         client.NotificationPostLiked,
		ActorID:      userID,
		TargetUserID: post.AuthorID,
		ResourceType: "post",
		ResourceID:   post.ID,
		ResourceName: post.Title,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.notifier.SendNotification(ctx, event); err != nil {
		s.logger.Warn("Failed to send like notification",
			zap.String("post_id", post.ID.String()),
			zap.Error(err))
	}
}
