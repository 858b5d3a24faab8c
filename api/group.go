package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"worknet/services"
)

// GroupController 群组控制器
type GroupController struct {
	GroupService *services.GroupService
}

// NewGroupController 创建群组控制器
func NewGroupController(groupService *services.GroupService) *GroupController {
	return &GroupController{
		GroupService: groupService,
	}
}

// CreateGroup 创建群组
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		MemberIDs   []uint `json:"member_ids"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	group, err := c.GroupService.CreateGroup(userID, req.Name, req.Description, req.MemberIDs)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"group": group})
}

// GetUserGroups 获取当前用户加入的群组
func (c *GroupController) GetUserGroups(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	groups, err := c.GroupService.GetUserGroups(userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroup 获取群组详情，仅成员可见
func (c *GroupController) GetGroup(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	groupID, ok := parseGroupID(ctx)
	if !ok {
		return
	}

	group, err := c.GroupService.GetGroupResponse(groupID, userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"group": group})
}

// AddMembers 添加成员，仅创建者可操作
func (c *GroupController) AddMembers(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	groupID, ok := parseGroupID(ctx)
	if !ok {
		return
	}

	var req struct {
		MemberIDs []uint `json:"member_ids" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	group, err := c.GroupService.AddMembers(groupID, userID, req.MemberIDs)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"group": group})
}

// RemoveMember 移除成员，仅创建者可操作
func (c *GroupController) RemoveMember(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	groupID, ok := parseGroupID(ctx)
	if !ok {
		return
	}

	memberID, err := strconv.ParseUint(ctx.Param("memberId"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的成员ID"})
		return
	}

	group, err := c.GroupService.RemoveMember(groupID, userID, uint(memberID))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"group": group})
}

// DeleteGroup 删除群组，仅创建者可操作
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	groupID, ok := parseGroupID(ctx)
	if !ok {
		return
	}

	if err := c.GroupService.DeleteGroup(groupID, userID); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "群组删除成功"})
}

// SendGroupMessage 发送群聊消息
func (c *GroupController) SendGroupMessage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	groupID, ok := parseGroupID(ctx)
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

	msg, err := c.GroupService.SendGroupMessage(groupID, userID, req.Content)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetGroupMessages 获取群聊消息
func (c *GroupController) GetGroupMessages(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	groupID, ok := parseGroupID(ctx)
	if !ok {
		return
	}

	messages, err := c.GroupService.GetGroupMessages(groupID, userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": messages})
}

// parseGroupID 解析路径中的群组ID
func parseGroupID(ctx *gin.Context) (uint, bool) {
	groupID, err := strconv.ParseUint(ctx.Param("groupId"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的群组ID"})
		return 0, false
	}
	return uint(groupID), true
}
