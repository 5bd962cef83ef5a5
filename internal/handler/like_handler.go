package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-engagement-api/internal/response"
	"blog-engagement-api/internal/service"
)

type LikeHandler struct {
	engagementService service.EngagementService
}

func NewLikeHandler(engagementService service.EngagementService) *LikeHandler {
	return &LikeHandler{
		engagementService: engagementService,
	}
}

// ToggleLike godoc
// @Summary      좋아요 토글
// @Description  좋아요가 없으면 추가하고 있으면 취소합니다. 결과 상태와 좋아요 수를 반환합니다
// @Tags         likes
// @Produce      json
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeToggleResponse} "토글 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Post ID"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Security     BearerAuth
// @Router       /posts/{postId}/like [post]
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	postID, ok := parseIDParam(c, "postId", "post")
	if !ok {
		return
	}

	result, err := h.engagementService.ToggleLike(c.Request.Context(), actor, postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetLikeStatus godoc
// @Summary      좋아요 상태 조회
// @Description  호출자의 좋아요 여부와 게시글의 좋아요 수를 반환합니다
// @Tags         likes
// @Produce      json
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.LikeToggleResponse} "조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Post ID"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Security     BearerAuth
// @Router       /posts/{postId}/like [get]
func (h *LikeHandler) GetLikeStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	postID, ok := parseIDParam(c, "postId", "post")
	if !ok {
		return
	}

	result, err := h.engagementService.GetLikeStatus(c.Request.Context(), actor, postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
