package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/response"
	"blog-engagement-api/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment godoc
// @Summary      댓글 작성
// @Description  게시글에 댓글 또는 답글을 작성합니다. parentId는 같은 게시글의 댓글이어야 합니다
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCommentRequest true "댓글 작성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse} "댓글 작성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청 또는 다른 게시글의 부모 댓글"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      404 {object} response.ErrorResponse "게시글 또는 부모 댓글을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Security     BearerAuth
// @Router       /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// ListComments godoc
// @Summary      게시글의 댓글 목록 조회
// @Description  작성 순서대로 정렬된 평면 목록을 반환합니다. view=tree 이면 답글이 중첩된 트리를 반환합니다. 임시저장 게시글은 작성자와 관리자만 조회할 수 있습니다
// @Tags         comments
// @Produce      json
// @Param        postId path string true "Post ID (UUID)"
// @Param        view query string false "flat(기본) 또는 tree"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse} "댓글 목록 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Post ID"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /comments/post/{postId} [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId", "post")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), actorFrom(c), postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if c.Query("view") == "tree" {
		response.SendSuccess(c, http.StatusOK, dto.BuildCommentTree(comments))
		return
	}
	response.SendSuccess(c, http.StatusOK, comments)
}

// DeleteComment godoc
// @Summary      댓글 삭제
// @Description  댓글과 모든 하위 답글을 삭제합니다. 작성자 또는 관리자만 가능합니다
// @Tags         comments
// @Produce      json
// @Param        commentId path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.DeleteCommentResponse} "댓글 삭제 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Comment ID"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "댓글을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Security     BearerAuth
// @Router       /comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	commentID, ok := parseIDParam(c, "commentId", "comment")
	if !ok {
		return
	}

	result, err := h.commentService.DeleteComment(c.Request.Context(), commentID, auth.UserID, auth.Role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
