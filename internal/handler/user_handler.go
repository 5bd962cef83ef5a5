package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-engagement-api/internal/domain"
	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/response"
	"blog-engagement-api/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register godoc
// @Summary      회원 가입
// @Description  계정을 생성합니다. 토큰 발급은 이 서비스의 범위가 아닙니다
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "가입 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.UserResponse} "가입 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      409 {object} response.ErrorResponse "이미 사용 중인 username 또는 email"
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, user)
}

// GetMe godoc
// @Summary      내 정보 조회
// @Tags         users
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	user, err := h.userService.GetMe(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateMe godoc
// @Summary      내 프로필 수정
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateProfileRequest true "수정할 필드"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Security     BearerAuth
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), auth.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// DeleteMe godoc
// @Summary      회원 탈퇴
// @Description  계정과 작성한 게시글, 댓글, 좋아요를 모두 삭제합니다
// @Tags         users
// @Produce      json
// @Success      200 {object} response.SuccessResponse "탈퇴 성공"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Security     BearerAuth
// @Router       /users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actor, actor.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}

// GetProfile godoc
// @Summary      공개 프로필 조회
// @Tags         users
// @Produce      json
// @Param        username path string true "username"
// @Success      200 {object} response.SuccessResponse{data=dto.ProfileResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "사용자를 찾을 수 없음"
// @Router       /users/{username} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, profile)
}

// ListUsers godoc
// @Summary      사용자 목록 (관리자)
// @Tags         admin
// @Produce      json
// @Param        page query int false "페이지"
// @Param        limit query int false "페이지 크기"
// @Success      200 {object} response.SuccessResponse{data=dto.PaginatedUsersResponse} "조회 성공"
// @Failure      403 {object} response.ErrorResponse "관리자 권한 필요"
// @Security     BearerAuth
// @Router       /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	query, ok := bindPageQuery(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, users)
}

// UpdateRole godoc
// @Summary      사용자 역할 변경 (관리자)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        userId path string true "User ID (UUID)"
// @Param        request body dto.UpdateRoleRequest true "새 역할"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "변경 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "관리자 권한 필요"
// @Failure      404 {object} response.ErrorResponse "사용자를 찾을 수 없음"
// @Security     BearerAuth
// @Router       /admin/users/{userId}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	targetID, ok := parseIDParam(c, "userId", "user")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), actor, targetID, domain.Role(req.Role))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary      사용자 삭제 (관리자)
// @Tags         admin
// @Produce      json
// @Param        userId path string true "User ID (UUID)"
// @Success      200 {object} response.SuccessResponse "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "관리자 권한 필요"
// @Failure      404 {object} response.ErrorResponse "사용자를 찾을 수 없음"
// @Security     BearerAuth
// @Router       /admin/users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	targetID, ok := parseIDParam(c, "userId", "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actor, targetID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
