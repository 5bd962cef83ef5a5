package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"blog-engagement-api/internal/client"
	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindFirstAdminFunc func(ctx context.Context) (*domain.User, error)
	ListFunc           func(ctx context.Context, offset, limit int) ([]*domain.User, int64, error)
	UpdateFunc         func(ctx context.Context, user *domain.User) error
	UpdateRoleFunc     func(ctx context.Context, id uuid.UUID, role domain.Role) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) FindFirstAdmin(ctx context.Context) (*domain.User, error) {
	if m.FindFirstAdminFunc != nil {
		return m.FindFirstAdminFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	CreateFunc              func(ctx context.Context, post *domain.Post) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ExistsFunc              func(ctx context.Context, id uuid.UUID) (bool, error)
	ListFunc                func(ctx context.Context, filter repository.PostFilter) ([]*domain.Post, int64, error)
	UpdateFunc              func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	IncrementViewsFunc      func(ctx context.Context, id uuid.UUID) error
	CountByAuthorFunc       func(ctx context.Context, authorID uuid.UUID, status domain.PostStatus) (int64, error)
	CountCommentsFunc       func(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	ReconcileLikeCountsFunc func(ctx context.Context) (int64, error)
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.Post{BaseModel: domain.BaseModel{ID: id}, Status: domain.PostStatusPublished}, nil
}

func (m *MockPostRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *MockPostRepository) List(ctx context.Context, filter repository.PostFilter) ([]*domain.Post, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *MockPostRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, updates)
	}
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if m.IncrementViewsFunc != nil {
		return m.IncrementViewsFunc(ctx, id)
	}
	return nil
}

func (m *MockPostRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID, status domain.PostStatus) (int64, error) {
	if m.CountByAuthorFunc != nil {
		return m.CountByAuthorFunc(ctx, authorID, status)
	}
	return 0, nil
}

func (m *MockPostRepository) CountComments(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if m.CountCommentsFunc != nil {
		return m.CountCommentsFunc(ctx, postIDs)
	}
	return map[uuid.UUID]int64{}, nil
}

func (m *MockPostRepository) ReconcileLikeCounts(ctx context.Context) (int64, error) {
	if m.ReconcileLikeCountsFunc != nil {
		return m.ReconcileLikeCountsFunc(ctx)
	}
	return 0, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc        func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPostFunc    func(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	DeleteSubtreeFunc func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	if m.ListByPostFunc != nil {
		return m.ListByPostFunc(ctx, postID)
	}
	return nil, nil
}

func (m *MockCommentRepository) DeleteSubtree(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.DeleteSubtreeFunc != nil {
		return m.DeleteSubtreeFunc(ctx, id)
	}
	return 0, nil
}

// MockLikeRepository is a mock implementation of LikeRepository
type MockLikeRepository struct {
	ToggleFunc      func(ctx context.Context, userID, postID uuid.UUID) (*repository.ToggleResult, error)
	ExistsFunc      func(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	CountByPostFunc func(ctx context.Context, postID uuid.UUID) (int64, error)
}

func (m *MockLikeRepository) Toggle(ctx context.Context, userID, postID uuid.UUID) (*repository.ToggleResult, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(ctx, userID, postID)
	}
	return &repository.ToggleResult{}, nil
}

func (m *MockLikeRepository) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, userID, postID)
	}
	return false, nil
}

func (m *MockLikeRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	if m.CountByPostFunc != nil {
		return m.CountByPostFunc(ctx, postID)
	}
	return 0, nil
}

// MockNotificationClient records every notification it is asked to send
type MockNotificationClient struct {
	mu     sync.Mutex
	Events []client.NotificationEvent
	Err    error
}

func (m *MockNotificationClient) SendNotification(ctx context.Context, event client.NotificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return m.Err
}

func (m *MockNotificationClient) SendBulkNotifications(ctx context.Context, events []client.NotificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, events...)
	return m.Err
}

func (m *MockNotificationClient) sent() []client.NotificationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]client.NotificationEvent(nil), m.Events...)
}

type publishedEvent struct {
	PostID    uuid.UUID
	EventType string
	Payload   interface{}
}

// MockEventPublisher records published live feed events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []publishedEvent
}

func (m *MockEventPublisher) Publish(postID uuid.UUID, eventType string, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, publishedEvent{PostID: postID, EventType: eventType, Payload: payload})
}

func (m *MockEventPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.EventType)
	}
	return types
}

// MockMediaService is a mock implementation of MediaService
type MockMediaService struct {
	GeneratePresignedURLFunc func(ctx context.Context, ownerID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
	RemovedURLs              []string
}

func (m *MockMediaService) GeneratePresignedURL(ctx context.Context, ownerID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	if m.GeneratePresignedURLFunc != nil {
		return m.GeneratePresignedURLFunc(ctx, ownerID, req)
	}
	return &dto.PresignedURLResponse{}, nil
}

func (m *MockMediaService) RemoveByURL(ctx context.Context, fileURL string) {
	m.RemovedURLs = append(m.RemovedURLs, fileURL)
}

// MockViewTracker answers ShouldCount from a fixed value
type MockViewTracker struct {
	Count bool
	Err   error
	Calls int
}

func (m *MockViewTracker) ShouldCount(ctx context.Context, postID uuid.UUID, viewerKey string) (bool, error) {
	m.Calls++
	return m.Count, m.Err
}
