package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"blog-engagement-api/internal/cache"
	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/metrics"
	"blog-engagement-api/internal/repository"
	"blog-engagement-api/internal/response"
	"blog-engagement-api/internal/util"
)

// PostService defines the interface for post business logic
type PostService interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetPost(ctx context.Context, actor Actor, postID uuid.UUID, viewerKey string) (*dto.PostResponse, error)
	ListPosts(ctx context.Context, query dto.PageQuery) (*dto.PaginatedPostsResponse, error)
	ListPostsByAuthor(ctx context.Context, username string, query dto.PageQuery) (*dto.PaginatedPostsResponse, error)
	ListAllPosts(ctx context.Context, query dto.PageQuery) (*dto.PaginatedPostsResponse, error)
	UpdatePost(ctx context.Context, actor Actor, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, actor Actor, postID uuid.UUID) error
}

// postServiceImpl is the implementation of PostService
type postServiceImpl struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	viewTracker  cache.ViewTracker
	mediaService MediaService
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewPostService creates a new instance of PostService
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	viewTracker cache.ViewTracker,
	mediaService MediaService,
	m *metrics.Metrics,
	logger *zap.Logger,
) PostService {
	if viewTracker == nil {
		viewTracker = cache.NewCountEveryView()
	}
	return &postServiceImpl{
		postRepo:     postRepo,
		userRepo:     userRepo,
		viewTracker:  viewTracker,
		mediaService: mediaService,
		metrics:      m,
		logger:       logger,
	}
}

// CreatePost creates a new post owned by authorID
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	if authorID == uuid.Nil {
		return nil, response.NewUnauthorizedError("Authentication required", "")
	}

	title := util.SanitizePlainText(req.Title)
	content := util.SanitizeRichText(req.Content)
	if title == "" || content == "" {
		return nil, response.NewValidationError("Title and content are required", "")
	}

	status := domain.PostStatusDraft
	if req.Status != "" {
		status = domain.PostStatus(req.Status)
		if !status.IsValid() {
			return nil, response.NewValidationError("Invalid status", "status must be draft or published")
		}
	}

	tags, err := encodeTags(req.Tags)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode tags", err.Error())
	}

	post := &domain.Post{
		Title:         title,
		Content:       content,
		Excerpt:       excerptFor(req.Excerpt, content),
		FeaturedImage: req.FeaturedImage,
		AuthorID:      authorID,
		Status:        status,
		Tags:          tags,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error("Failed to create post", zap.String("author_id", authorID.String()), zap.Error(err))
		return nil, storeError(err, "Author not found", "Failed to create post")
	}

	if s.metrics != nil {
		s.metrics.IncrementPostCreated()
	}

	created, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to fetch created post")
	}
	resp := toPostResponse(created, 0)
	return &resp, nil
}

// GetPost returns a post and counts the view. Drafts are only visible to
// their author and admins.
func (s *postServiceImpl) GetPost(ctx context.Context, actor Actor, postID uuid.UUID, viewerKey string) (*dto.PostResponse, error) {
	post, err := findVisiblePost(ctx, s.postRepo, actor, postID)
	if err != nil {
		return nil, err
	}

	countView, err := s.viewTracker.ShouldCount(ctx, postID, viewerKey)
	if err != nil {
		s.logger.Warn("View tracker unavailable, counting view", zap.Error(err))
		countView = true
	}
	if countView {
		if err := s.postRepo.IncrementViews(ctx, postID); err != nil {
			s.logger.Warn("Failed to increment views", zap.String("post_id", postID.String()), zap.Error(err))
		} else {
			post.Views++
		}
	}

	counts, err := s.postRepo.CountComments(ctx, []uuid.UUID{postID})
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to count comments")
	}

	resp := toPostResponse(post, counts[postID])
	return &resp, nil
}

// ListPosts returns published posts, newest first
func (s *postServiceImpl) ListPosts(ctx context.Context, query dto.PageQuery) (*dto.PaginatedPostsResponse, error) {
	status := domain.PostStatusPublished
	return s.list(ctx, query, repository.PostFilter{Status: &status, Search: query.Search})
}

// ListPostsByAuthor returns the published posts of one author
func (s *postServiceImpl) ListPostsByAuthor(ctx context.Context, username string, query dto.PageQuery) (*dto.PaginatedPostsResponse, error) {
	author, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, storeError(err, "User not found", "Failed to fetch author")
	}
	status := domain.PostStatusPublished
	return s.list(ctx, query, repository.PostFilter{Status: &status, AuthorID: &author.ID, Search: query.Search})
}

// ListAllPosts returns posts in every status, for administrators
func (s *postServiceImpl) ListAllPosts(ctx context.Context, query dto.PageQuery) (*dto.PaginatedPostsResponse, error) {
	return s.list(ctx, query, repository.PostFilter{Search: query.Search})
}

func (s *postServiceImpl) list(ctx context.Context, query dto.PageQuery, filter repository.PostFilter) (*dto.PaginatedPostsResponse, error) {
	query.Normalize()
	filter.Offset = query.Offset()
	filter.Limit = query.Limit

	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to list posts")
	}

	ids := make([]uuid.UUID, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	counts, err := s.postRepo.CountComments(ctx, ids)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to count comments")
	}

	items := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostResponse(post, counts[post.ID]))
	}

	return &dto.PaginatedPostsResponse{
		Posts:      items,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdatePost applies a partial update. Only the author or an admin may update.
func (s *postServiceImpl) UpdatePost(ctx context.Context, actor Actor, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, response.NewUnauthorizedError("Authentication required", "")
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to fetch post")
	}
	if !actor.Can(post.AuthorID) {
		return nil, response.NewForbiddenError("You can only edit your own posts", "")
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		title := util.SanitizePlainText(*req.Title)
		if title == "" {
			return nil, response.NewValidationError("Title cannot be empty", "")
		}
		updates["title"] = title
	}
	if req.Content != nil {
		content := util.SanitizeRichText(*req.Content)
		if content == "" {
			return nil, response.NewValidationError("Content cannot be empty", "")
		}
		updates["content"] = content
		if req.Excerpt == nil {
			updates["excerpt"] = excerptFor(nil, content)
		}
	}
	if req.Excerpt != nil {
		updates["excerpt"] = excerptFor(req.Excerpt, post.Content)
	}
	if req.Status != nil {
		status := domain.PostStatus(*req.Status)
		if !status.IsValid() {
			return nil, response.NewValidationError("Invalid status", "status must be draft or published")
		}
		updates["status"] = status
	}
	if req.Tags != nil {
		tags, err := encodeTags(req.Tags)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode tags", err.Error())
		}
		updates["tags"] = tags
	}

	var replacedImage string
	if req.FeaturedImage != nil {
		if post.FeaturedImage != nil && *post.FeaturedImage != *req.FeaturedImage {
			replacedImage = *post.FeaturedImage
		}
		if *req.FeaturedImage == "" {
			updates["featured_image"] = nil
		} else {
			updates["featured_image"] = *req.FeaturedImage
		}
	}

	if len(updates) > 0 {
		if err := s.postRepo.Update(ctx, postID, updates); err != nil {
			return nil, storeError(err, "Post not found", "Failed to update post")
		}
	}

	if replacedImage != "" && s.mediaService != nil {
		s.mediaService.RemoveByURL(ctx, replacedImage)
	}

	updated, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to fetch updated post")
	}
	counts, err := s.postRepo.CountComments(ctx, []uuid.UUID{postID})
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to count comments")
	}

	resp := toPostResponse(updated, counts[postID])
	return &resp, nil
}

// DeletePost removes a post with its comments and likes
func (s *postServiceImpl) DeletePost(ctx context.Context, actor Actor, postID uuid.UUID) error {
	if !actor.IsAuthenticated() {
		return response.NewUnauthorizedError("Authentication required", "")
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return storeError(err, "Post not found", "Failed to fetch post")
	}
	if !actor.Can(post.AuthorID) {
		return response.NewForbiddenError("You can only delete your own posts", "")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return storeError(err, "Post not found", "Failed to delete post")
	}

	if post.FeaturedImage != nil && s.mediaService != nil {
		s.mediaService.RemoveByURL(ctx, *post.FeaturedImage)
	}

	s.logger.Info("Post deleted",
		zap.String("post_id", postID.String()),
		zap.String("actor_id", actor.ID.String()))
	return nil
}

// excerptFor uses the explicit excerpt when given, otherwise derives one from content
func excerptFor(explicit *string, content string) *string {
	var excerpt string
	if explicit != nil {
		excerpt = util.SanitizePlainText(*explicit)
	}
	if excerpt == "" {
		excerpt = util.Excerpt(content, util.ExcerptLength)
	}
	if excerpt == "" {
		return nil
	}
	return &excerpt
}

func encodeTags(tags []string) (datatypes.JSON, error) {
	data, err := json.Marshal(util.NormalizeTags(tags))
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func decodeTags(raw datatypes.JSON) []string {
	tags := []string{}
	if len(raw) == 0 {
		return tags
	}
	if err := json.Unmarshal(raw, &tags); err != nil {
		return []string{}
	}
	return tags
}

// toPostResponse converts domain.Post to dto.PostResponse
func toPostResponse(post *domain.Post, commentCount int64) dto.PostResponse {
	return dto.PostResponse{
		PostID:        post.ID,
		Title:         post.Title,
		Content:       post.Content,
		Excerpt:       post.Excerpt,
		FeaturedImage: post.FeaturedImage,
		Status:        string(post.Status),
		Tags:          decodeTags(post.Tags),
		Views:         post.Views,
		Likes:         post.Likes,
		CommentCount:  commentCount,
		Author:        toAuthorSummary(&post.Author),
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

func toAuthorSummary(user *domain.User) dto.AuthorSummary {
	return dto.AuthorSummary{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.DisplayName(),
		Avatar:   user.Avatar,
	}
}
