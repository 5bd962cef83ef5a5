package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-engagement-api/internal/config"
	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/middleware"
	"blog-engagement-api/internal/service"
)

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	CreateCommentFunc func(ctx context.Context, actor service.Actor, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListCommentsFunc  func(ctx context.Context, actor service.Actor, postID uuid.UUID) ([]dto.CommentResponse, error)
	DeleteCommentFunc func(ctx context.Context, commentID, requesterID uuid.UUID, role domain.Role) (*dto.DeleteCommentResponse, error)
}

func (m *MockCommentService) CreateComment(ctx context.Context, actor service.Actor, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, actor, req)
	}
	return &dto.CommentResponse{}, nil
}

func (m *MockCommentService) ListComments(ctx context.Context, actor service.Actor, postID uuid.UUID) ([]dto.CommentResponse, error) {
	if m.ListCommentsFunc != nil {
		return m.ListCommentsFunc(ctx, actor, postID)
	}
	return []dto.CommentResponse{}, nil
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID, requesterID uuid.UUID, role domain.Role) (*dto.DeleteCommentResponse, error) {
	if m.DeleteCommentFunc != nil {
		return m.DeleteCommentFunc(ctx, commentID, requesterID, role)
	}
	return &dto.DeleteCommentResponse{CommentID: commentID, Removed: 1}, nil
}

// MockEngagementService is a mock implementation of EngagementService
type MockEngagementService struct {
	ToggleLikeFunc    func(ctx context.Context, actor service.Actor, postID uuid.UUID) (*dto.LikeToggleResponse, error)
	GetLikeStatusFunc func(ctx context.Context, actor service.Actor, postID uuid.UUID) (*dto.LikeToggleResponse, error)
}

func (m *MockEngagementService) ToggleLike(ctx context.Context, actor service.Actor, postID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, actor, postID)
	}
	return &dto.LikeToggleResponse{Liked: true, LikeCount: 1}, nil
}

func (m *MockEngagementService) GetLikeStatus(ctx context.Context, actor service.Actor, postID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if m.GetLikeStatusFunc != nil {
		return m.GetLikeStatusFunc(ctx, actor, postID)
	}
	return &dto.LikeToggleResponse{}, nil
}

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	CreatePostFunc        func(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	GetPostFunc           func(ctx context.Context, actor service.Actor, postID uuid.UUID, viewerKey string) (*dto.PostResponse, error)
	ListPostsFunc         func(ctx context.Context, query dto.PageQuery) (*dto.PaginatedPostsResponse, error)
	ListPostsByAuthorFunc func(ctx context.Context, username string, query dto.PageQuery) (*dto.PaginatedPostsResponse, error)
	ListAllPostsFunc      func(ctx context.Context, query dto.PageQuery) (*dto.PaginatedPostsResponse, error)
	UpdatePostFunc        func(ctx context.Context, actor service.Actor, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePostFunc        func(ctx context.Context, actor service.Actor, postID uuid.UUID) error
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, authorID, req)
	}
	return &dto.PostResponse{}, nil
}

func (m *MockPostService) GetPost(ctx context.Context, actor service.Actor, postID uuid.UUID, viewerKey string) (*dto.PostResponse, error) {
	if m.GetPostFunc != nil {
		return m.GetPostFunc(ctx, actor, postID, viewerKey)
	}
	return &dto.PostResponse{PostID: postID}, nil
}

func (m *MockPostService) ListPosts(ctx context.Context, query dto.PageQuery) (*dto.PaginatedPostsResponse, error) {
	if m.ListPostsFunc != nil {
		return m.ListPostsFunc(ctx, query)
	}
	return &dto.PaginatedPostsResponse{Posts: []dto.PostResponse{}}, nil
}

func (m *MockPostService) ListPostsByAuthor(ctx context.Context, username string, query dto.PageQuery) (*dto.PaginatedPostsResponse, error) {
	if m.ListPostsByAuthorFunc != nil {
		return m.ListPostsByAuthorFunc(ctx, username, query)
	}
	return &dto.PaginatedPostsResponse{Posts: []dto.PostResponse{}}, nil
}

func (m *MockPostService) ListAllPosts(ctx context.Context, query dto.PageQuery) (*dto.PaginatedPostsResponse, error) {
	if m.ListAllPostsFunc != nil {
		return m.ListAllPostsFunc(ctx, query)
	}
	return &dto.PaginatedPostsResponse{Posts: []dto.PostResponse{}}, nil
}

func (m *MockPostService) UpdatePost(ctx context.Context, actor service.Actor, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(ctx, actor, postID, req)
	}
	return &dto.PostResponse{PostID: postID}, nil
}

func (m *MockPostService) DeletePost(ctx context.Context, actor service.Actor, postID uuid.UUID) error {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, actor, postID)
	}
	return nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	RegisterFunc      func(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	GetProfileFunc    func(ctx context.Context, username string) (*dto.ProfileResponse, error)
	GetMeFunc         func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfileFunc func(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListUsersFunc     func(ctx context.Context, query dto.PageQuery) (*dto.PaginatedUsersResponse, error)
	UpdateRoleFunc    func(ctx context.Context, actor service.Actor, targetID uuid.UUID, role domain.Role) (*dto.UserResponse, error)
	DeleteUserFunc    func(ctx context.Context, actor service.Actor, targetID uuid.UUID) error
}

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &dto.UserResponse{Username: req.Username}, nil
}

func (m *MockUserService) GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, username)
	}
	return &dto.ProfileResponse{Username: username}, nil
}

func (m *MockUserService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if m.GetMeFunc != nil {
		return m.GetMeFunc(ctx, userID)
	}
	return &dto.UserResponse{UserID: userID}, nil
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, req)
	}
	return &dto.UserResponse{UserID: userID}, nil
}

func (m *MockUserService) ResolveActor(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return &domain.User{Role: domain.RoleUser}, nil
}

func (m *MockUserService) ListUsers(ctx context.Context, query dto.PageQuery) (*dto.PaginatedUsersResponse, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, query)
	}
	return &dto.PaginatedUsersResponse{Users: []dto.UserResponse{}}, nil
}

func (m *MockUserService) UpdateRole(ctx context.Context, actor service.Actor, targetID uuid.UUID, role domain.Role) (*dto.UserResponse, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, actor, targetID, role)
	}
	return &dto.UserResponse{UserID: targetID, Role: string(role)}, nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, actor service.Actor, targetID uuid.UUID) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, actor, targetID)
	}
	return nil
}

func (m *MockUserService) SeedAdmin(ctx context.Context, cfg config.AdminConfig) (*domain.User, error) {
	return &domain.User{Role: domain.RoleAdmin}, nil
}

// MockMediaService is a mock implementation of MediaService
type MockMediaService struct {
	GeneratePresignedURLFunc func(ctx context.Context, ownerID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
}

func (m *MockMediaService) GeneratePresignedURL(ctx context.Context, ownerID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	if m.GeneratePresignedURLFunc != nil {
		return m.GeneratePresignedURLFunc(ctx, ownerID, req)
	}
	return &dto.PresignedURLResponse{}, nil
}

func (m *MockMediaService) RemoveByURL(ctx context.Context, fileURL string) {}

// withIdentity simulates Auth + ResolveRole for handler tests
func withIdentity(userID uuid.UUID, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.UserIDKey, userID)
			c.Set(middleware.TokenKey, "test-token")
			c.Set(middleware.RoleKey, role)
		}
		c.Next()
	}
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to unmarshal response: %v (%s)", err, w.Body.String())
	}
	return env
}

