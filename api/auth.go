package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"worknet/middleware"
	"worknet/services"
)

// AuthController 认证控制器
type AuthController struct {
	UserService *services.UserService
}

// NewAuthController 创建认证控制器
func NewAuthController(userService *services.UserService) *AuthController {
	return &AuthController{
		UserService: userService,
	}
}

// Register 用户注册
func (c *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	// 注册用户
	user, err := c.UserService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	// 生成JWT令牌
	token, err := middleware.GenerateToken(user.ID, user.Name)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "生成令牌失败"})
		return
	}

	// 返回用户信息和令牌
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"user":    user.ToResponse(),
		"token":   token,
	})
}

// Login 用户登录
func (c *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	// 验证用户
	user, err := c.UserService.Login(req.Email, req.Password)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	// 生成JWT令牌
	token, err := middleware.GenerateToken(user.ID, user.Name)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "生成令牌失败"})
		return
	}

	// 返回用户信息和令牌
	ctx.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"user":    user.ToResponse(),
		"token":   token,
	})
}
