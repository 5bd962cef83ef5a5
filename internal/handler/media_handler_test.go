package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/response"
)

func TestMediaHandler_GeneratePresignedURL(t *testing.T) {
	userID := uuid.New()
	valid := dto.PresignedURLRequest{Kind: "featured", FileName: "cover.png", ContentType: "image/png", FileSize: 1024}

	tests := []struct {
		name           string
		userID         uuid.UUID
		body           interface{}
		mockService    func(*MockMediaService)
		expectedStatus int
	}{
		{
			name:   "성공: URL 생성",
			userID: userID,
			body:   valid,
			mockService: func(m *MockMediaService) {
				m.GeneratePresignedURLFunc = func(ctx context.Context, owner uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
					assert.Equal(t, userID, owner)
					return &dto.PresignedURLResponse{UploadURL: "https://s3/upload", FileKey: "blog/featured/x.png"}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "실패: 알 수 없는 종류",
			userID:         userID,
			body:           dto.PresignedURLRequest{Kind: "video", FileName: "a.mp4", ContentType: "video/mp4", FileSize: 1},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "실패: 허용되지 않는 형식",
			userID: userID,
			body:   valid,
			mockService: func(m *MockMediaService) {
				m.GeneratePresignedURLFunc = func(ctx context.Context, owner uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
					return nil, response.NewValidationError("Unsupported content type", "")
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "실패: 인증 없음",
			userID:         uuid.Nil,
			body:           valid,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockMediaService{}
			if tt.mockService != nil {
				tt.mockService(svc)
			}
			r := newTestEngine()
			r.POST("/media/presigned-url", withIdentity(tt.userID, domain.RoleUser), NewMediaHandler(svc).GeneratePresignedURL)

			w := doRequest(r, "POST", "/media/presigned-url", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
