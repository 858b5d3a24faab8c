package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"worknet/services"
)

// InvitationController 日程邀请控制器
type InvitationController struct {
	InvitationService *services.InvitationService
	CalendarService   *services.CalendarService
}

// NewInvitationController 创建日程邀请控制器
func NewInvitationController(invitationService *services.InvitationService, calendarService *services.CalendarService) *InvitationController {
	return &InvitationController{
		InvitationService: invitationService,
		CalendarService:   calendarService,
	}
}

// SendInvitation 发送日程邀请
func (c *InvitationController) SendInvitation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		RecipientID      uint   `json:"recipient_id" binding:"required"`
		EventID          string `json:"event_id" binding:"required"`
		EventDate        string `json:"event_date" binding:"required"`
		EventName        string `json:"event_name" binding:"required"`
		EventDescription string `json:"event_description"`
		EventTime        string `json:"event_time"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	invitation, err := c.InvitationService.SendInvitation(userID, req.RecipientID,
		req.EventID, req.EventDate, req.EventName, req.EventDescription, req.EventTime)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":    "邀请发送成功",
		"invitation": invitation,
	})
}

// GetPendingInvitations 获取待处理邀请
func (c *InvitationController) GetPendingInvitations(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	invitations, err := c.InvitationService.GetPendingInvitations(userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// AcceptInvitation 接受邀请
func (c *InvitationController) AcceptInvitation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		InvitationID uint `json:"invitation_id" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	invitation, calendarEvent, err := c.InvitationService.AcceptInvitation(req.InvitationID, userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":        "已接受邀请",
		"invitation":     invitation,
		"calendar_event": calendarEvent,
	})
}

// DeclineInvitation 拒绝邀请
func (c *InvitationController) DeclineInvitation(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		InvitationID uint `json:"invitation_id" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	invitation, err := c.InvitationService.DeclineInvitation(req.InvitationID, userID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "已拒绝邀请",
		"invitation": invitation,
	})
}

// GetEventAttendees 获取日程参与者，date和event_id为查询参数
func (c *InvitationController) GetEventAttendees(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	date := ctx.Query("date")
	eventID := ctx.Query("event_id")
	if date == "" || eventID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "缺少date或event_id参数"})
		return
	}

	attendees, err := c.CalendarService.GetEventAttendees(userID, date, eventID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"attendees":       attendees,
		"total_attendees": len(attendees),
	})
}
