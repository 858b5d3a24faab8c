package api

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"worknet/config"
	"worknet/services"
)

// RegisterRoutes 注册API路由
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, storage services.Storage) {
	// 创建服务
	userService := services.NewUserService(db, rdb)
	postService := services.NewPostService(db, userService)
	messageService := services.NewMessageService(db, userService)
	groupService := services.NewGroupService(db, userService)
	calendarService := services.NewCalendarService(db)
	invitationService := services.NewInvitationService(db, userService, calendarService)

	// 创建控制器
	authController := NewAuthController(userService)
	userController := NewUserController(userService, storage)
	postController := NewPostController(postService, storage)
	messageController := NewMessageController(messageService)
	groupController := NewGroupController(groupService)
	calendarController := NewCalendarController(calendarService)
	invitationController := NewInvitationController(invitationService, calendarService)
	monitorController := NewMonitorController(db, rdb)

	// 上传文件静态目录
	r.Static(config.AppConfig.UploadBaseURL, config.AppConfig.UploadDir)

	api := r.Group("/api")
	{
		// 认证相关（公开）
		api.POST("/register", authController.Register)
		api.POST("/login", authController.Login)

		// 用户相关（列表和公开资料读取无需令牌）
		api.GET("/users", userController.GetAllUsers)
		api.GET("/users/:id", userController.GetUserByID)
		api.GET("/profile", userController.GetProfile)
		api.PUT("/profile", userController.UpdateProfile)
		api.PUT("/profile/password", userController.ChangePassword)

		// 帖子相关
		api.GET("/posts", postController.GetPosts)
		api.POST("/posts", postController.CreatePost)
		api.POST("/posts/:postId/like", postController.ToggleLike)
		api.POST("/posts/:postId/comment", postController.AddComment)
		api.DELETE("/posts/:postId", postController.DeletePost)

		// 私信相关
		api.POST("/messages/send", messageController.SendMessage)
		api.GET("/messages/conversations", messageController.GetConversations)
		api.GET("/messages/conversation/:userId", messageController.GetConversation)
		api.PUT("/messages/read/:userId", messageController.MarkAsRead)

		// 群组相关
		api.POST("/groups", groupController.CreateGroup)
		api.GET("/groups", groupController.GetUserGroups)
		api.GET("/groups/:groupId", groupController.GetGroup)
		api.PUT("/groups/:groupId/members", groupController.AddMembers)
		api.DELETE("/groups/:groupId/members/:memberId", groupController.RemoveMember)
		api.DELETE("/groups/:groupId", groupController.DeleteGroup)
		api.POST("/groups/:groupId/messages", groupController.SendGroupMessage)
		api.GET("/groups/:groupId/messages", groupController.GetGroupMessages)

		// 日历相关
		api.GET("/calendar", calendarController.GetEvents)
		api.GET("/calendar/user/:userId", calendarController.GetUserEvents)
		api.GET("/calendar/date/:date", calendarController.GetEventByDate)
		api.POST("/calendar/work-hours", calendarController.SaveWorkHours)
		api.POST("/calendar/event", calendarController.AddEvent)
		api.DELETE("/calendar/event", calendarController.DeleteEvent)
		api.DELETE("/calendar/date/:date", calendarController.DeleteDate)

		// 日程邀请相关
		api.POST("/invitations/send", invitationController.SendInvitation)
		api.GET("/invitations", invitationController.GetPendingInvitations)
		api.POST("/invitations/accept", invitationController.AcceptInvitation)
		api.POST("/invitations/decline", invitationController.DeclineInvitation)
		api.GET("/invitations/attendees", invitationController.GetEventAttendees)

		// 监控相关
		api.GET("/monitor/system", monitorController.GetSystemStatus)
	}
}
