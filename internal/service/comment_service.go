package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"blog-engagement-api/internal/client"
	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/metrics"
	"blog-engagement-api/internal/repository"
	"blog-engagement-api/internal/response"
	"blog-engagement-api/internal/util"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, actor Actor, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, actor Actor, postID uuid.UUID) ([]dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID, requesterID uuid.UUID, requesterRole domain.Role) (*dto.DeleteCommentResponse, error)
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	notifier    client.NotificationClient
	publisher   EventPublisher
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifier client.NotificationClient,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	if notifier == nil {
		notifier = client.NewNoOpNotificationClient()
	}
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		publisher:   publisher,
		metrics:     m,
		logger:      logger,
	}
}

// CreateComment adds a comment or a reply to a post. The checks below give
// precise errors; the repository repeats them inside the insert transaction,
// so a post or parent removed in between is still reported as NotFound.
func (s *commentServiceImpl) CreateComment(ctx context.Context, actor Actor, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, response.NewUnauthorizedError("Authentication required", "")
	}
	userID := actor.ID

	content := util.SanitizePlainText(req.Content)
	if content == "" {
		return nil, response.NewValidationError("Comment content is empty", "content must contain text")
	}

	post, err := findVisiblePost(ctx, s.postRepo, actor, req.PostID)
	if err != nil {
		return nil, err
	}

	var parent *domain.Comment
	if req.ParentID != nil {
		parent, err = s.commentRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			return nil, storeError(err, "Parent comment not found", "Failed to verify parent comment")
		}
		if parent.PostID != req.PostID {
			return nil, invalidParent(parent.ID, req.PostID)
		}
	}

	comment := &domain.Comment{
		PostID:   req.PostID,
		UserID:   userID,
		ParentID: req.ParentID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		switch {
		case errors.Is(err, repository.ErrParentOnOtherPost):
			return nil, invalidParent(*req.ParentID, req.PostID)
		case errors.Is(err, gorm.ErrRecordNotFound), repository.IsForeignKeyError(err):
			return nil, response.NewNotFoundError("Post or parent comment not found", "")
		}
		s.logger.Error("Failed to create comment",
			zap.String("post_id", req.PostID.String()),
			zap.Error(err))
		return nil, storeError(err, "Post not found", "Failed to create comment")
	}

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to load comment author", zap.String("user_id", userID.String()), zap.Error(err))
	} else {
		comment.User = *author
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}

	resp := toCommentResponse(comment)
	publish(s.publisher, comment.PostID, EventCommentCreated, resp)
	s.notifyComment(ctx, userID, post, parent, comment)

	return &resp, nil
}

// ListComments returns every comment of a post in creation order
func (s *commentServiceImpl) ListComments(ctx context.Context, actor Actor, postID uuid.UUID) ([]dto.CommentResponse, error) {
	if _, err := findVisiblePost(ctx, s.postRepo, actor, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to fetch comments")
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, toCommentResponse(comment))
	}
	return responses, nil
}

// DeleteComment removes a comment with all of its replies
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID, requesterID uuid.UUID, requesterRole domain.Role) (*dto.DeleteCommentResponse, error) {
	if requesterID == uuid.Nil {
		return nil, response.NewUnauthorizedError("Authentication required", "")
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, storeError(err, "Comment not found", "Failed to fetch comment")
	}

	if !CanMutate(requesterID, comment.UserID, requesterRole) {
		return nil, response.NewForbiddenError("You can only delete your own comments", "")
	}

	removed, err := s.commentRepo.DeleteSubtree(ctx, commentID)
	if err != nil {
		// lost a race with another delete of the same subtree
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Comment not found", "")
		}
		s.logger.Error("Failed to delete comment subtree",
			zap.String("comment_id", commentID.String()),
			zap.Error(err))
		return nil, storeError(err, "Comment not found", "Failed to delete comment")
	}

	if s.metrics != nil {
		s.metrics.AddCommentsDeleted(removed)
	}

	s.logger.Info("Comment deleted",
		zap.String("comment_id", commentID.String()),
		zap.String("requester_id", requesterID.String()),
		zap.Int64("removed", removed))

	resp := &dto.DeleteCommentResponse{CommentID: commentID, Removed: removed}
	publish(s.publisher, comment.PostID, EventCommentDeleted, resp)
	return resp, nil
}

// notifyComment informs the parent's author of a reply, or the post author of a new comment
func (s *commentServiceImpl) notifyComment(ctx context.Context, actorID uuid.UUID, post *domain.Post, parent *domain.Comment, comment *domain.Comment) {
	event := client.NotificationEvent{
		Type:         client.NotificationCommentAdded,
		ActorID:      actorID,
		TargetUserID: post.AuthorID,
		ResourceType: "post",
		ResourceID:   post.ID,
		ResourceName: post.Title,
		Metadata: map[string]interface{}{
			"commentId": comment.ID.String(),
		},
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if parent != nil {
		event.Type = client.NotificationCommentReplied
		event.TargetUserID = parent.UserID
		event.Metadata["parentId"] = parent.ID.String()
	}

	if err := s.notifier.SendNotification(ctx, event); err != nil {
		s.logger.Warn("Failed to send comment notification",
			zap.String("comment_id", comment.ID.String()),
			zap.Error(err))
	}
}

func invalidParent(parentID, postID uuid.UUID) error {
	return response.NewAppError(response.ErrCodeInvalidReference,
		"Parent comment belongs to a different post",
		"parentId "+parentID.String()+" is not on post "+postID.String())
}

// toCommentResponse converts domain.Comment to dto.CommentResponse
func toCommentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		CommentID:      comment.ID,
		PostID:         comment.PostID,
		UserID:         comment.UserID,
		ParentID:       comment.ParentID,
		Content:        comment.Content,
		AuthorUsername: comment.User.Username,
		AuthorName:     comment.User.DisplayName(),
		AuthorAvatar:   comment.User.Avatar,
		CreatedAt:      comment.CreatedAt,
		UpdatedAt:      comment.UpdatedAt,
	}
}
