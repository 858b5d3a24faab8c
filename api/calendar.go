package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"worknet/services"
)

// CalendarController 日历控制器
type CalendarController struct {
	CalendarService *services.CalendarService
}

// NewCalendarController 创建日历控制器
func NewCalendarController(calendarService *services.CalendarService) *CalendarController {
	return &CalendarController{
		CalendarService: calendarService,
	}
}

// GetEvents 获取当前用户的日历，可选startDate/endDate范围过滤
func (c *CalendarController) GetEvents(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	events, err := c.CalendarService.GetEvents(userID, ctx.Query("startDate"), ctx.Query("endDate"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"events": events})
}

// GetUserEvents 查看同事的日历
func (c *CalendarController) GetUserEvents(ctx *gin.Context) {
	targetID, err := strconv.ParseUint(ctx.Param("userId"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的用户ID"})
		return
	}

	events, err := c.CalendarService.GetEvents(uint(targetID), ctx.Query("startDate"), ctx.Query("endDate"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"events": events})
}

// GetEventByDate 获取指定日期的日历，不存在时返回空结构
func (c *CalendarController) GetEventByDate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	event, err := c.CalendarService.GetEventByDate(userID, ctx.Param("date"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// SaveWorkHours 保存上班时间
func (c *CalendarController) SaveWorkHours(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		Date  string `json:"date" binding:"required"`
		Start string `json:"start" binding:"required"`
		End   string `json:"end" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	event, err := c.CalendarService.SaveWorkHours(userID, req.Date, req.Start, req.End)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// AddEvent 添加日程
func (c *CalendarController) AddEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		Date        string `json:"date" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Time        string `json:"time" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	event, err := c.CalendarService.AddEvent(userID, req.Date, req.Name, req.Description, req.Time)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// DeleteEvent 按日程ID删除日程
func (c *CalendarController) DeleteEvent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		Date    string `json:"date" binding:"required"`
		EventID string `json:"event_id" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	event, err := c.CalendarService.DeleteEvent(userID, req.Date, req.EventID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// DeleteDate 删除指定日期的全部日历数据
func (c *CalendarController) DeleteDate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.CalendarService.DeleteDate(userID, ctx.Param("date")); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "日历数据删除成功"})
}
