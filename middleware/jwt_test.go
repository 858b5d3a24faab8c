package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worknet/config"
	"worknet/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := middleware.GenerateToken(42, "张伟")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// 解析出的声明与签发时一致
	claims, err := middleware.ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "张伟", claims.Name)
	assert.Equal(t, "worknet", claims.Issuer)
}

func TestParseToken_Invalid(t *testing.T) {
	_, err := middleware.ParseToken("not-a-token")
	assert.Error(t, err)

	// 用其他密钥签发的令牌无法通过验证
	config.AppConfig.JWTSecret = "other-secret"
	token, err := middleware.GenerateToken(1, "李娜")
	require.NoError(t, err)
	config.AppConfig.JWTSecret = "test-secret"

	_, err = middleware.ParseToken(token)
	assert.Error(t, err)
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.JWTAuth())
	handler := func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	}
	r.GET("/api/posts", handler)
	r.POST("/api/login", handler)
	r.GET("/api/users", handler)
	r.PUT("/api/profile", handler)
	return r
}

func TestJWTAuth_RequiresToken(t *testing.T) {
	r := newAuthRouter()

	// 无令牌
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 格式错误
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 有效令牌放行
	token, err := middleware.GenerateToken(7, "张伟")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestJWTAuth_PublicPaths(t *testing.T) {
	r := newAuthRouter()

	// 登录和公开的用户列表读取不需要令牌
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// 资料更新不是公开路径
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
