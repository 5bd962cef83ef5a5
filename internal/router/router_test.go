package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"blog-engagement-api/internal/config"
	"blog-engagement-api/internal/database"
	"blog-engagement-api/internal/metrics"
	"blog-engagement-api/internal/repository"
	"blog-engagement-api/internal/service"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLite("")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// setupTestRouter creates a test router with minimal configuration
func setupTestRouter(t *testing.T, basePath string, m *metrics.Metrics) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	r := Setup(Config{
		DB:        db,
		Logger:    zap.NewNop(),
		JWTSecret: testSecret,
		BasePath:  basePath,
		Metrics:   m,
	})
	return r, db
}

func newRegistryMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

func token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID.String()}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func call(t *testing.T, r *gin.Engine, method, path, bearer string, body interface{}) (int, json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env.Data
}

// TestMetricsEndpoint_RootPath tests /metrics endpoint at root path
func TestMetricsEndpoint_RootPath(t *testing.T) {
	router, _ := setupTestRouter(t, "", newRegistryMetrics())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	body := w.Body.String()
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "# TYPE")
	// Go 런타임 메트릭은 기본 레지스트리에 항상 포함됨
	assert.Contains(t, body, "go_goroutines")
}

// TestMetricsEndpoint_WithBasePath tests /metrics endpoint with base path configured
func TestMetricsEndpoint_WithBasePath(t *testing.T) {
	basePath := "/api"
	router, _ := setupTestRouter(t, basePath, newRegistryMetrics())

	for _, path := range []string{"/metrics", basePath + "/metrics"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, "metrics should not require authentication")
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		})
	}
}

func TestProbes(t *testing.T) {
	router, _ := setupTestRouter(t, "/api", newRegistryMetrics())

	for _, path := range []string{"/health", "/ready", "/api/health", "/api/ready"} {
		code, _ := call(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, code, path)
	}
}

// TestMetricsEndpoint_ContainsAllMetrics tests that all expected metrics are registered
func TestMetricsEndpoint_ContainsAllMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	_ = metrics.NewWithRegistry(registry, zap.NewNop())

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	metricNames := make(map[string]bool)
	for _, mf := range metricFamilies {
		metricNames[mf.GetName()] = true
	}

	expected := []string{
		"blog_service_db_connections_open",
		"blog_service_db_connections_in_use",
		"blog_service_db_connections_idle",
		"blog_service_db_connections_max",
		"blog_service_users_total",
		"blog_service_posts_total",
		"blog_service_comments_total",
		"blog_service_likes_total",
		"blog_service_live_feed_subscribers",
		"blog_service_db_connection_wait_total",
		"blog_service_user_registered_total",
		"blog_service_post_created_total",
		"blog_service_comment_created_total",
		"blog_service_comment_deleted_total",
		"blog_service_like_counter_repairs_total",
		"blog_service_rate_limited_requests_total",
	}
	for _, metric := range expected {
		assert.True(t, metricNames[metric], "Registry should contain metric: %s", metric)
	}
}

func TestRoutes_AuthBoundaries(t *testing.T) {
	router, _ := setupTestRouter(t, "/api", newRegistryMetrics())
	postID := uuid.New().String()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodPost, "/api/posts/" + postID + "/like", http.StatusUnauthorized},
		{http.MethodGet, "/api/posts/" + postID + "/like", http.StatusUnauthorized},
		{http.MethodPost, "/api/comments", http.StatusUnauthorized},
		{http.MethodDelete, "/api/comments/" + postID, http.StatusUnauthorized},
		{http.MethodPost, "/api/media/presigned-url", http.StatusUnauthorized},
		{http.MethodGet, "/api/admin/users", http.StatusUnauthorized},
		// public
		{http.MethodGet, "/api/comments/post/" + postID, http.StatusNotFound},
		{http.MethodGet, "/api/posts", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			code, _ := call(t, router, tt.method, tt.path, "", nil)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRoutes_TokenForDeletedAccount(t *testing.T) {
	router, _ := setupTestRouter(t, "/api", newRegistryMetrics())

	code, _ := call(t, router, http.MethodGet, "/api/users/me", token(t, uuid.New()), nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

// End-to-end: admin A publishes P, reader B toggles twice, comments and replies,
// then A removes the thread.
func TestScenario_OverHTTP(t *testing.T) {
	router, db := setupTestRouter(t, "/api", newRegistryMetrics())
	ctx := context.Background()

	userService := service.NewUserService(repository.NewUserRepository(db), repository.NewPostRepository(db), nil, nil, zap.NewNop())
	admin, err := userService.SeedAdmin(ctx, config.AdminConfig{
		Username: "admin", Email: "admin@blog.com", Password: "admin123", FullName: "Administrator",
	})
	require.NoError(t, err)
	tokenA := token(t, admin.ID)

	// B registers
	code, data := call(t, router, http.MethodPost, "/api/users", "", map[string]string{
		"username": "reader", "email": "reader@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code)
	var b struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &b))
	tokenB := token(t, b.ID)

	// A creates P
	code, data = call(t, router, http.MethodPost, "/api/posts", tokenA, map[string]interface{}{
		"title": "Hello", "content": "<p>World</p>", "status": "published",
	})
	require.Equal(t, http.StatusCreated, code)
	var p struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &p))
	postPath := "/api/posts/" + p.ID.String()

	// B toggles twice
	code, data = call(t, router, http.MethodPost, postPath+"/like", tokenB, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"liked":true,"likeCount":1}`, string(data))

	code, data = call(t, router, http.MethodGet, postPath+"/like", tokenB, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"liked":true,"likeCount":1}`, string(data))

	code, data = call(t, router, http.MethodPost, postPath+"/like", tokenB, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"liked":false,"likeCount":0}`, string(data))

	// B comments C1 and replies C2
	code, data = call(t, router, http.MethodPost, "/api/comments", tokenB, map[string]interface{}{
		"postId": p.ID, "content": "first",
	})
	require.Equal(t, http.StatusCreated, code)
	var c1 struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &c1))

	code, _ = call(t, router, http.MethodPost, "/api/comments", tokenB, map[string]interface{}{
		"postId": p.ID, "content": "reply", "parentId": c1.ID,
	})
	require.Equal(t, http.StatusCreated, code)

	code, data = call(t, router, http.MethodGet, "/api/comments/post/"+p.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, code)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "reader", listed[0]["username"])

	// A (admin) deletes C1, which removes C2 too
	code, data = call(t, router, http.MethodDelete, "/api/comments/"+c1.ID.String(), tokenA, nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Contains(string(data), `"removed":2`), string(data))

	code, data = call(t, router, http.MethodGet, "/api/comments/post/"+p.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(data))

	// second delete is NotFound
	code, _ = call(t, router, http.MethodDelete, "/api/comments/"+c1.ID.String(), tokenA, nil)
	assert.Equal(t, http.StatusNotFound, code)

	// admin routes are closed to B and open to A
	code, _ = call(t, router, http.MethodGet, "/api/admin/users", tokenB, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = call(t, router, http.MethodGet, "/api/admin/users", tokenA, nil)
	assert.Equal(t, http.StatusOK, code)
}
