package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/response"
	"blog-engagement-api/internal/service"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// CreatePost godoc
// @Summary      게시글 작성
// @Description  새 게시글을 작성합니다. status 기본값은 draft 입니다
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body dto.CreatePostRequest true "게시글 작성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.PostResponse} "게시글 작성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Security     BearerAuth
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), auth.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, post)
}

// GetPost godoc
// @Summary      게시글 조회
// @Description  게시글을 조회하고 조회수를 증가시킵니다. draft 게시글은 작성자와 관리자만 볼 수 있습니다
// @Tags         posts
// @Produce      json
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.PostResponse} "게시글 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Post ID"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /posts/{postId} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId", "post")
	if !ok {
		return
	}

	actor := actorFrom(c)
	viewerKey := "ip:" + c.ClientIP()
	if actor.IsAuthenticated() {
		viewerKey = "user:" + actor.ID.String()
	}

	post, err := h.postService.GetPost(c.Request.Context(), actor, postID, viewerKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, post)
}

// ListPosts godoc
// @Summary      게시글 목록 조회
// @Description  발행된 게시글을 최신순으로 조회합니다. search는 제목과 본문을 검색합니다
// @Tags         posts
// @Produce      json
// @Param        page query int false "페이지 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 10, 최대 100)"
// @Param        search query string false "검색어"
// @Success      200 {object} response.SuccessResponse{data=dto.PaginatedPostsResponse} "목록 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 쿼리"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	query, ok := bindPageQuery(c)
	if !ok {
		return
	}

	posts, err := h.postService.ListPosts(c.Request.Context(), query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, posts)
}

// ListPostsByAuthor godoc
// @Summary      작성자별 게시글 목록
// @Tags         posts
// @Produce      json
// @Param        username path string true "작성자 username"
// @Param        page query int false "페이지"
// @Param        limit query int false "페이지 크기"
// @Success      200 {object} response.SuccessResponse{data=dto.PaginatedPostsResponse} "목록 조회 성공"
// @Failure      404 {object} response.ErrorResponse "사용자를 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /users/{username}/posts [get]
func (h *PostHandler) ListPostsByAuthor(c *gin.Context) {
	query, ok := bindPageQuery(c)
	if !ok {
		return
	}

	posts, err := h.postService.ListPostsByAuthor(c.Request.Context(), c.Param("username"), query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, posts)
}

// ListAllPosts godoc
// @Summary      전체 게시글 목록 (관리자)
// @Description  draft를 포함한 모든 게시글을 조회합니다
// @Tags         admin
// @Produce      json
// @Param        page query int false "페이지"
// @Param        limit query int false "페이지 크기"
// @Param        search query string false "검색어"
// @Success      200 {object} response.SuccessResponse{data=dto.PaginatedPostsResponse} "목록 조회 성공"
// @Failure      403 {object} response.ErrorResponse "관리자 권한 필요"
// @Security     BearerAuth
// @Router       /admin/posts [get]
func (h *PostHandler) ListAllPosts(c *gin.Context) {
	query, ok := bindPageQuery(c)
	if !ok {
		return
	}

	posts, err := h.postService.ListAllPosts(c.Request.Context(), query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, posts)
}

// UpdatePost godoc
// @Summary      게시글 수정
// @Description  작성자 또는 관리자만 수정할 수 있습니다
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        postId path string true "Post ID (UUID)"
// @Param        request body dto.UpdatePostRequest true "수정할 필드"
// @Success      200 {object} response.SuccessResponse{data=dto.PostResponse} "수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /posts/{postId} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	postID, ok := parseIDParam(c, "postId", "post")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), actor, postID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, post)
}

// DeletePost godoc
// @Summary      게시글 삭제
// @Description  게시글과 댓글, 좋아요를 함께 삭제합니다. 작성자 또는 관리자만 가능합니다
// @Tags         posts
// @Produce      json
// @Param        postId path string true "Post ID (UUID)"
// @Success      200 {object} response.SuccessResponse "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Security     BearerAuth
// @Router       /posts/{postId} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	postID, ok := parseIDParam(c, "postId", "post")
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), actor, postID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, nil)
}
