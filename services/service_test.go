package services_test

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"worknet/models"
	"worknet/services"
)

// newTestDB 打开内存数据库并迁移全部表结构
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Message{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupMessage{},
		&models.CalendarEvent{},
		&models.CalendarInvitation{},
	)
	require.NoError(t, err)

	return db
}

// newTestRedis 返回一个连不上的Redis客户端
// 缓存代码在Redis出错时会降级直查数据库，测试正好走这条路径
func newTestRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

// newTestUserService 创建测试用的用户服务
func newTestUserService(t *testing.T, db *gorm.DB) *services.UserService {
	t.Helper()
	return services.NewUserService(db, newTestRedis())
}

// createUser 注册一个测试用户
func createUser(t *testing.T, svc *services.UserService, name, email string) *models.User {
	t.Helper()
	user, err := svc.Register(name, email, "password123")
	require.NoError(t, err)
	return user
}
