package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"blog-engagement-api/internal/response"
)

// LiveFeed accepts websocket subscribers for a post
type LiveFeed interface {
	Serve(conn *websocket.Conn, postID, userID uuid.UUID)
}

// PostLookup reports whether a post exists
type PostLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type LiveHandler struct {
	feed     LiveFeed
	posts    PostLookup
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewLiveHandler creates the live feed handler. checkOrigin may be nil to accept any origin.
func NewLiveHandler(feed LiveFeed, posts PostLookup, checkOrigin func(r *http.Request) bool, logger *zap.Logger) *LiveHandler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &LiveHandler{
		feed:  feed,
		posts: posts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// Subscribe godoc
// @Summary      게시글 실시간 피드 구독 (WebSocket)
// @Description  comment.created, comment.deleted, like.toggled 이벤트를 수신합니다. 토큰은 token 쿼리로 전달할 수 있습니다
// @Tags         live
// @Param        postId path string true "Post ID (UUID)"
// @Param        token query string false "JWT (선택)"
// @Success      101 "Switching Protocols"
// @Failure      400 {object} response.ErrorResponse "잘못된 Post ID"
// @Failure      404 {object} response.ErrorResponse "게시글을 찾을 수 없음"
// @Router       /posts/{postId}/ws [get]
func (h *LiveHandler) Subscribe(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId", "post")
	if !ok {
		return
	}

	exists, err := h.posts.Exists(c.Request.Context(), postID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !exists {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Post not found")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.Warn("WebSocket upgrade failed", zap.String("post_id", postID.String()), zap.Error(err))
		return
	}

	h.feed.Serve(conn, postID, actorFrom(c).ID)
}

// OriginChecker builds a CheckOrigin func from the allowed CORS origins
func OriginChecker(allowedOrigins []string) func(r *http.Request) bool {
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		return nil
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
