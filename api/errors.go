package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"worknet/services"
)

// statusFromError 将服务层错误类别映射为HTTP状态码
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError 记录错误并返回映射后的状态码，内部错误不暴露细节
func abortWithError(ctx *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Printf("内部错误 %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		ctx.JSON(status, gin.H{"error": "服务器内部错误"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// currentUserID 从上下文中获取认证后的用户ID
func currentUserID(ctx *gin.Context) (uint, bool) {
	userID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "未认证"})
		return 0, false
	}
	return userID.(uint), true
}
