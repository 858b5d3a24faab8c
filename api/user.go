package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"worknet/services"
)

// UserController 用户控制器
type UserController struct {
	UserService *services.UserService
	Storage     services.Storage
}

// NewUserController 创建用户控制器
func NewUserController(userService *services.UserService, storage services.Storage) *UserController {
	return &UserController{
		UserService: userService,
		Storage:     storage,
	}
}

// GetAllUsers 获取所有用户（公开）
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.UserService.GetAllUsers()
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUserByID 获取指定用户的公开资料
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	userResp, err := c.UserService.GetUserResponse(uint(id))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResp})
}

// GetProfile 获取当前用户的个人资料
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	userResp, err := c.UserService.GetUserResponse(userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResp})
}

// UpdateProfile 更新个人资料，只能更新令牌持有者自己的记录
// multipart表单，文本字段可选，头像和封面为可选文件
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	update := services.ProfileUpdate{
		Name:     ctx.PostForm("name"),
		Tag:      ctx.PostForm("tag"),
		Position: ctx.PostForm("position"),
		About:    ctx.PostForm("about"),
	}

	// 头像上传
	if file, err := ctx.FormFile("profilePhoto"); err == nil {
		url, _, err := c.Storage.Save(file)
		if err != nil {
			abortWithError(ctx, err)
			return
		}
		update.ProfilePhoto = url
	}

	// 封面上传
	if file, err := ctx.FormFile("coverPhoto"); err == nil {
		url, _, err := c.Storage.Save(file)
		if err != nil {
			abortWithError(ctx, err)
			return
		}
		update.CoverPhoto = url
	}

	user, err := c.UserService.UpdateProfile(userID, update)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "更新成功",
		"user":    user.ToResponse(),
	})
}

// ChangePassword 修改密码
func (c *UserController) ChangePassword(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	if err := c.UserService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "密码修改成功"})
}
