package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/response"
	"blog-engagement-api/internal/service"
)

func userRouter(svc *MockUserService, userID uuid.UUID, role domain.Role) *gin.Engine {
	r := newTestEngine()
	h := NewUserHandler(svc)
	ident := withIdentity(userID, role)
	r.POST("/users", h.Register)
	r.GET("/users/me", ident, h.GetMe)
	r.PUT("/users/me", ident, h.UpdateMe)
	r.DELETE("/users/me", ident, h.DeleteMe)
	r.GET("/users/:username", h.GetProfile)
	r.GET("/admin/users", ident, h.ListUsers)
	r.PUT("/admin/users/:userId/role", ident, h.UpdateRole)
	r.DELETE("/admin/users/:userId", ident, h.DeleteUser)
	return r
}

func TestUserHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		mockService    func(*MockUserService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "성공: 가입",
			body:           dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "secret1"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "실패: 잘못된 이메일",
			body:           dto.RegisterRequest{Username: "jdoe", Email: "nope", Password: "secret1"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeValidation,
		},
		{
			name:           "실패: 짧은 비밀번호",
			body:           dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "123"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeValidation,
		},
		{
			name: "실패: 중복 username",
			body: dto.RegisterRequest{Username: "jdoe", Email: "jdoe@example.com", Password: "secret1"},
			mockService: func(m *MockUserService) {
				m.RegisterFunc = func(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
					return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Username already taken", "")
				}
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   response.ErrCodeAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockUserService{}
			if tt.mockService != nil {
				tt.mockService(svc)
			}
			w := doRequest(userRouter(svc, uuid.Nil, ""), http.MethodPost, "/users", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decode(t, w).Error.Code)
			}
		})
	}
}

func TestUserHandler_Me(t *testing.T) {
	userID := uuid.New()

	var deleted service.Actor
	var deletedTarget uuid.UUID
	svc := &MockUserService{
		DeleteUserFunc: func(ctx context.Context, actor service.Actor, target uuid.UUID) error {
			deleted, deletedTarget = actor, target
			return nil
		},
	}
	router := userRouter(svc, userID, domain.RoleUser)

	t.Run("성공: 내 정보", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/users/me", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var user dto.UserResponse
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &user))
		assert.Equal(t, userID, user.UserID)
	})

	t.Run("성공: 프로필 수정", func(t *testing.T) {
		bio := "hello"
		w := doRequest(router, http.MethodPut, "/users/me", dto.UpdateProfileRequest{Bio: &bio})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("성공: 탈퇴는 자기 자신을 대상으로", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/users/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, deleted.ID)
		assert.Equal(t, userID, deletedTarget)
	})

	t.Run("실패: 인증 없음", func(t *testing.T) {
		w := doRequest(userRouter(svc, uuid.Nil, ""), http.MethodGet, "/users/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_GetProfile(t *testing.T) {
	svc := &MockUserService{
		GetProfileFunc: func(ctx context.Context, username string) (*dto.ProfileResponse, error) {
			if username == "ghost" {
				return nil, response.NewNotFoundError("User not found", "")
			}
			return &dto.ProfileResponse{Username: username, PostCount: 3}, nil
		},
	}
	router := userRouter(svc, uuid.Nil, "")

	w := doRequest(router, http.MethodGet, "/users/jdoe", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"postCount":3`)

	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/users/ghost", nil).Code)
}

func TestUserHandler_Admin(t *testing.T) {
	adminID := uuid.New()
	targetID := uuid.New()

	t.Run("성공: 역할 변경", func(t *testing.T) {
		svc := &MockUserService{
			UpdateRoleFunc: func(ctx context.Context, actor service.Actor, target uuid.UUID, role domain.Role) (*dto.UserResponse, error) {
				assert.True(t, actor.IsAdmin())
				assert.Equal(t, targetID, target)
				return &dto.UserResponse{UserID: target, Role: string(role)}, nil
			},
		}
		w := doRequest(userRouter(svc, adminID, domain.RoleAdmin), http.MethodPut, "/admin/users/"+targetID.String()+"/role", dto.UpdateRoleRequest{Role: "admin"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"role":"admin"`)
	})

	t.Run("실패: 알 수 없는 역할", func(t *testing.T) {
		w := doRequest(userRouter(&MockUserService{}, adminID, domain.RoleAdmin), http.MethodPut, "/admin/users/"+targetID.String()+"/role", dto.UpdateRoleRequest{Role: "owner"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("실패: 사용자 삭제 권한 없음", func(t *testing.T) {
		svc := &MockUserService{
			DeleteUserFunc: func(ctx context.Context, actor service.Actor, target uuid.UUID) error {
				return response.NewForbiddenError("Not allowed to delete this user", "")
			},
		}
		w := doRequest(userRouter(svc, uuid.New(), domain.RoleUser), http.MethodDelete, "/admin/users/"+targetID.String(), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("성공: 사용자 목록", func(t *testing.T) {
		w := doRequest(userRouter(&MockUserService{}, adminID, domain.RoleAdmin), http.MethodGet, "/admin/users?page=1&limit=20", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
