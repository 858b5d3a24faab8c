package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"worknet/services"
)

// MessageController 私信控制器
type MessageController struct {
	MessageService *services.MessageService
}

// NewMessageController 创建私信控制器
func NewMessageController(messageService *services.MessageService) *MessageController {
	return &MessageController{
		MessageService: messageService,
	}
}

// SendMessage 发送私信
func (c *MessageController) SendMessage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		ReceiverID uint   `json:"receiver_id" binding:"required"`
		Content    string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	msg, err := c.MessageService.SendMessage(userID, req.ReceiverID, req.Content)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetConversation 获取与指定用户的往来消息
func (c *MessageController) GetConversation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	otherID, ok := parseUserParam(ctx)
	if !ok {
		return
	}

	messages, err := c.MessageService.GetConversation(userID, otherID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MarkAsRead 标记对方发来的消息为已读
func (c *MessageController) MarkAsRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	otherID, ok := parseUserParam(ctx)
	if !ok {
		return
	}

	if err := c.MessageService.MarkAsRead(userID, otherID); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "标记已读成功"})
}

// GetConversations 获取会话列表
func (c *MessageController) GetConversations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	conversations, err := c.MessageService.GetConversations(userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// parseUserParam 解析路径中的用户ID
func parseUserParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("userId"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return 0, false
	}
	return uint(id), true
}
