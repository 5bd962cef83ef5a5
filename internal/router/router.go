package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	commonmw "github.com/OrangesCloud/wealist-advanced-go-pkg/middleware"

	"blog-engagement-api/internal/cache"
	"blog-engagement-api/internal/client"
	"blog-engagement-api/internal/handler"
	"blog-engagement-api/internal/metrics"
	"blog-engagement-api/internal/middleware"
	"blog-engagement-api/internal/realtime"
	"blog-engagement-api/internal/repository"
	"blog-engagement-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB                 *gorm.DB
	Redis              *redis.Client
	Logger             *zap.Logger
	JWTSecret          string
	TokenValidator     middleware.TokenValidator
	BasePath           string
	AllowedOrigins     []string
	RateLimitPerMinute int
	Metrics            *metrics.Metrics
	S3Client           client.S3ClientInterface
	NotificationClient client.NotificationClient
	ViewTracker        cache.ViewTracker
	Hub                *realtime.Hub
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(commonmw.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))
	if cfg.RateLimitPerMinute > 0 {
		r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimitPerMinute), cfg.Metrics))
	}

	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	// Probes and metrics at the root for kubernetes and prometheus
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	postRepo := repository.NewPostRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	likeRepo := repository.NewLikeRepository(cfg.DB)

	// A nil *Hub must not become a non-nil EventPublisher
	var publisher service.EventPublisher
	if cfg.Hub != nil {
		publisher = cfg.Hub
	}

	// Initialize services
	mediaService := service.NewMediaService(cfg.S3Client, cfg.Logger)
	userService := service.NewUserService(userRepo, postRepo, mediaService, cfg.Metrics, cfg.Logger)
	postService := service.NewPostService(postRepo, userRepo, cfg.ViewTracker, mediaService, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, cfg.NotificationClient, publisher, cfg.Metrics, cfg.Logger)
	engagementService := service.NewEngagementService(likeRepo, postRepo, cfg.NotificationClient, publisher, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(engagementService)
	mediaHandler := handler.NewMediaHandler(mediaService)

	validator := cfg.TokenValidator
	if validator == nil {
		validator = middleware.NewJWTValidator(cfg.JWTSecret)
	}
	resolveRole := middleware.ResolveRole(userService)
	authRequired := []gin.HandlerFunc{middleware.Auth(validator), resolveRole}
	authOptional := []gin.HandlerFunc{middleware.OptionalAuth(validator), resolveRole}

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ============================================================
	// User routes
	// ============================================================
	users := api.Group("/users")
	{
		users.POST("", userHandler.Register)
		users.GET("/me", append(authRequired, userHandler.GetMe)...)
		users.PUT("/me", append(authRequired, userHandler.UpdateMe)...)
		users.DELETE("/me", append(authRequired, userHandler.DeleteMe)...)
		users.GET("/:username", userHandler.GetProfile)
		users.GET("/:username/posts", postHandler.ListPostsByAuthor)
	}

	// ============================================================
	// Post routes
	// ============================================================
	posts := api.Group("/posts")
	{
		posts.GET("", postHandler.ListPosts)
		posts.POST("", append(authRequired, postHandler.CreatePost)...)
		posts.GET("/:postId", append(authOptional, postHandler.GetPost)...)
		posts.PUT("/:postId", append(authRequired, postHandler.UpdatePost)...)
		posts.DELETE("/:postId", append(authRequired, postHandler.DeletePost)...)

		// Likes
		posts.POST("/:postId/like", append(authRequired, likeHandler.ToggleLike)...)
		posts.GET("/:postId/like", append(authRequired, likeHandler.GetLikeStatus)...)

		// Live feed
		if cfg.Hub != nil {
			liveHandler := handler.NewLiveHandler(cfg.Hub, postRepo, handler.OriginChecker(cfg.AllowedOrigins), cfg.Logger)
			posts.GET("/:postId/ws", append(authOptional, liveHandler.Subscribe)...)
		}
	}

	// ============================================================
	// Comment routes
	// ============================================================
	comments := api.Group("/comments")
	{
		comments.POST("", append(authRequired, commentHandler.CreateComment)...)
		comments.GET("/post/:postId", append(authOptional, commentHandler.ListComments)...)
		comments.DELETE("/:commentId", append(authRequired, commentHandler.DeleteComment)...)
	}

	// ============================================================
	// Media routes
	// ============================================================
	media := api.Group("/media")
	media.Use(authRequired...)
	{
		media.POST("/presigned-url", mediaHandler.GeneratePresignedURL)
	}

	// ============================================================
	// Admin routes
	// ============================================================
	admin := api.Group("/admin")
	admin.Use(authRequired...)
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", userHandler.ListUsers)
		admin.PUT("/users/:userId/role", userHandler.UpdateRole)
		admin.DELETE("/users/:userId", userHandler.DeleteUser)
		admin.GET("/posts", postHandler.ListAllPosts)
	}

	return r
}
