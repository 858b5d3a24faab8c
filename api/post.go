package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"worknet/models"
	"worknet/services"
)

// PostController 帖子控制器
type PostController struct {
	PostService *services.PostService
	Storage     services.Storage
}

// NewPostController 创建帖子控制器
func NewPostController(postService *services.PostService, storage services.Storage) *PostController {
	return &PostController{
		PostService: postService,
		Storage:     storage,
	}
}

// GetPosts 获取帖子列表，按时间倒序
func (c *PostController) GetPosts(ctx *gin.Context) {
	posts, err := c.PostService.GetPosts()
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"posts": posts})
}

// CreatePost 发布帖子，multipart表单：content必填，media为可选附件
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	content := ctx.PostForm("content")

	var media string
	var mediaType models.MediaType
	if file, err := ctx.FormFile("media"); err == nil {
		media, mediaType, err = c.Storage.Save(file)
		if err != nil {
			abortWithError(ctx, err)
			return
		}
	}

	post, err := c.PostService.CreatePost(userID, content, media, mediaType)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"post": post})
}

// ToggleLike 点赞开关
func (c *PostController) ToggleLike(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, ok := parsePostID(ctx)
	if !ok {
		return
	}

	post, err := c.PostService.ToggleLike(postID, userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"post": post})
}

// AddComment 添加评论
func (c *PostController) AddComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, ok := parsePostID(ctx)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	post, err := c.PostService.AddComment(postID, userID, req.Content)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"post": post})
}

// DeletePost 删除帖子，仅作者可操作
func (c *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, ok := parsePostID(ctx)
	if !ok {
		return
	}

	if err := c.PostService.DeletePost(postID, userID); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "帖子删除成功"})
}

// parsePostID 解析路径中的帖子ID
func parsePostID(ctx *gin.Context) (uint, bool) {
	postID, err := strconv.ParseUint(ctx.Param("postId"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的帖子ID"})
		return 0, false
	}
	return uint(postID), true
}
