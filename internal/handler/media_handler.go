package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-engagement-api/internal/dto"
	"blog-engagement-api/internal/response"
	"blog-engagement-api/internal/service"
)

type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// GeneratePresignedURL godoc
// @Summary      이미지 업로드용 Presigned URL 생성
// @Description  아바타 또는 대표 이미지 업로드를 위한 S3 Presigned URL을 생성합니다 (5분 유효)
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request body dto.PresignedURLRequest true "업로드할 파일 정보"
// @Success      200 {object} response.SuccessResponse{data=dto.PresignedURLResponse} "생성 성공"
// @Failure      400 {object} response.ErrorResponse "허용되지 않는 파일 형식 또는 크기"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Security     BearerAuth
// @Router       /media/presigned-url [post]
func (h *MediaHandler) GeneratePresignedURL(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	var req dto.PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.mediaService.GeneratePresignedURL(c.Request.Context(), auth.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
