package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"blog-engagement-api/internal/config"
	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/metrics"
	"blog-engagement-api/internal/repository"
	"blog-engagement-api/internal/response"
	"blog-engagement-api/internal/util"
)

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ResolveActor(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context, query dto.PageQuery) (*dto.PaginatedUsersResponse, error)
	UpdateRole(ctx context.Context, actor Actor, targetID uuid.UUID, role domain.Role) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actor Actor, targetID uuid.UUID) error
	SeedAdmin(ctx context.Context, cfg config.AdminConfig) (*domain.User, error)
}

// userServiceImpl is the implementation of UserService
type userServiceImpl struct {
	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	mediaService MediaService
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	mediaService MediaService,
	m *metrics.Metrics,
	logger *zap.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		postRepo:     postRepo,
		mediaService: mediaService,
		metrics:      m,
		logger:       logger,
	}
}

// Register creates a regular user account
func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.ensureAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		if util.IsPasswordTooLong(err) {
			return nil, response.NewValidationError("Password is too long", "password must be at most 72 bytes")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     util.SanitizePlainText(req.FullName),
		Role:         domain.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent registration took the name between the check and the insert
		if repository.IsDuplicateError(err) {
			return nil, response.NewAppError(response.ErrCodeConstraintViolation, "Username or email already registered", err.Error())
		}
		return nil, storeError(err, "User not found", "Failed to create user")
	}

	if s.metrics != nil {
		s.metrics.IncrementUserRegistered()
	}
	s.logger.Info("User registered", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userServiceImpl) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return response.NewAppError(response.ErrCodeAlreadyExists, "Username already taken", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeError(err, "User not found", "Failed to check username")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return response.NewAppError(response.ErrCodeAlreadyExists, "Email already registered", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeError(err, "User not found", "Failed to check email")
	}
	return nil
}

// GetProfile returns the public profile of a user with their published post count
func (s *userServiceImpl) GetProfile(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, storeError(err, "User not found", "Failed to fetch user")
	}

	postCount, err := s.postRepo.CountByAuthor(ctx, user.ID, domain.PostStatusPublished)
	if err != nil {
		return nil, storeError(err, "User not found", "Failed to count posts")
	}

	return &dto.ProfileResponse{
		UserID:    user.ID,
		Username:  user.Username,
		FullName:  user.DisplayName(),
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		PostCount: postCount,
		CreatedAt: user.CreatedAt,
	}, nil
}

// GetMe returns the caller's own account
func (s *userServiceImpl) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found", "Failed to fetch user")
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile changes the caller's display fields
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found", "Failed to fetch user")
	}

	var replacedAvatar string
	if req.FullName != nil {
		user.FullName = util.SanitizePlainText(*req.FullName)
	}
	if req.Bio != nil {
		user.Bio = optionalText(util.SanitizePlainText(*req.Bio))
	}
	if req.Avatar != nil {
		if user.Avatar != nil && *user.Avatar != *req.Avatar {
			replacedAvatar = *user.Avatar
		}
		user.Avatar = optionalText(strings.TrimSpace(*req.Avatar))
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, storeError(err, "User not found", "Failed to update profile")
	}

	if replacedAvatar != "" && s.mediaService != nil {
		s.mediaService.RemoveByURL(ctx, replacedAvatar)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ResolveActor looks up the role of an authenticated identity.
// Identities without an account are rejected as unauthenticated.
func (s *userServiceImpl) ResolveActor(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, response.NewUnauthorizedError("Authentication required", "")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorizedError("Unknown user", "")
		}
		return nil, storeError(err, "User not found", "Failed to resolve user")
	}
	return user, nil
}

// ListUsers returns a page of accounts, for administrators
func (s *userServiceImpl) ListUsers(ctx context.Context, query dto.PageQuery) (*dto.PaginatedUsersResponse, error) {
	query.Normalize()

	users, total, err := s.userRepo.List(ctx, query.Offset(), query.Limit)
	if err != nil {
		return nil, storeError(err, "User not found", "Failed to list users")
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}
	return &dto.PaginatedUsersResponse{
		Users:      items,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdateRole changes the role of another account. Admins only.
func (s *userServiceImpl) UpdateRole(ctx context.Context, actor Actor, targetID uuid.UUID, role domain.Role) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("Admin role required", "")
	}
	if !role.IsValid() {
		return nil, response.NewValidationError("Invalid role", "role must be user or admin")
	}
	if actor.ID == targetID && role != domain.RoleAdmin {
		return nil, response.NewValidationError("Cannot demote yourself", "")
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, storeError(err, "User not found", "Failed to update role")
	}

	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, storeError(err, "User not found", "Failed to fetch user")
	}

	s.logger.Info("User role changed",
		zap.String("actor_id", actor.ID.String()),
		zap.String("target_id", targetID.String()),
		zap.String("role", string(role)))

	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteUser removes an account with everything it owns.
// Users may delete themselves; admins may delete anyone.
func (s *userServiceImpl) DeleteUser(ctx context.Context, actor Actor, targetID uuid.UUID) error {
	if !actor.IsAuthenticated() {
		return response.NewUnauthorizedError("Authentication required", "")
	}
	if !actor.Can(targetID) {
		return response.NewForbiddenError("You can only delete your own account", "")
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return storeError(err, "User not found", "Failed to delete user")
	}

	s.logger.Info("User deleted",
		zap.String("actor_id", actor.ID.String()),
		zap.String("target_id", targetID.String()))
	return nil
}

// SeedAdmin creates the bootstrap admin account unless an admin already exists
func (s *userServiceImpl) SeedAdmin(ctx context.Context, cfg config.AdminConfig) (*domain.User, error) {
	existing, err := s.userRepo.FindFirstAdmin(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err, "User not found", "Failed to look up admin")
	}

	if cfg.Username == "" || cfg.Email == "" || cfg.Password == "" {
		return nil, response.NewValidationError("Admin account is not configured", "admin username, email and password are required")
	}

	hash, err := util.HashPassword(cfg.Password)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash admin password", err.Error())
	}

	admin := &domain.User{
		Username:     cfg.Username,
		Email:        strings.ToLower(cfg.Email),
		PasswordHash: hash,
		FullName:     cfg.FullName,
		Role:         domain.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, storeError(err, "User not found", "Failed to create admin")
	}

	s.logger.Info("Admin account created", zap.String("username", admin.Username))
	return admin, nil
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// toUserResponse converts domain.User to dto.UserResponse
func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
