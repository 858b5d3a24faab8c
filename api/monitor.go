package api

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// MonitorController 监控控制器
type MonitorController struct {
	DB  *gorm.DB
	RDB *redis.Client
}

// NewMonitorController 创建监控控制器
func NewMonitorController(db *gorm.DB, rdb *redis.Client) *MonitorController {
	return &MonitorController{
		DB:  db,
		RDB: rdb,
	}
}

// GetSystemStatus 获取系统状态
func (c *MonitorController) GetSystemStatus(ctx *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status := gin.H{
		"goroutines": runtime.NumGoroutine(),
		"memory": gin.H{
			"alloc":       m.Alloc / 1024 / 1024,      // MB
			"total_alloc": m.TotalAlloc / 1024 / 1024, // MB
			"sys":         m.Sys / 1024 / 1024,        // MB
			"num_gc":      m.NumGC,
		},
	}

	// 数据库连接池状态
	if sqlDB, err := c.DB.DB(); err == nil {
		stats := sqlDB.Stats()
		status["database"] = gin.H{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
		}
	}

	// Redis连接池状态
	poolStats := c.RDB.PoolStats()
	status["redis"] = gin.H{
		"total_conns": poolStats.TotalConns,
		"idle_conns":  poolStats.IdleConns,
		"hits":        poolStats.Hits,
		"misses":      poolStats.Misses,
	}

	ctx.JSON(http.StatusOK, status)
}
