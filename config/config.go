package config

import (
	"log"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig 应用配置
var AppConfig struct {
	// 服务器配置
	Port      string
	Mode      string // debug 或 release
	JWTSecret string

	// Redis配置（用于缓存和限流）
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPoolSize int

	// 数据库配置
	DBConnectionString string
	DBMaxIdleConns     int
	DBMaxOpenConns     int

	// 缓存配置
	CacheExpiration int // 缓存过期时间（秒）

	// 文件上传配置
	UploadDir     string
	UploadBaseURL string
	MaxUploadMB   int64

	// 限流配置
	RateLimitPerMinute int
}

// LoadConfig 从环境变量加载配置
func LoadConfig() {
	// 尝试加载.env文件
	err := godotenv.Load()
	if err != nil {
		log.Println("未找到.env文件，将使用环境变量")
	}

	// 服务器配置
	AppConfig.Port = getEnv("PORT", "8080")
	AppConfig.Mode = getEnv("MODE", "debug")

	// JWT密钥必须显式配置，缺失时直接终止启动
	AppConfig.JWTSecret = os.Getenv("JWT_SECRET")
	if AppConfig.JWTSecret == "" {
		log.Fatal("缺少JWT_SECRET环境变量，拒绝启动")
	}

	// Redis配置
	AppConfig.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	AppConfig.RedisPassword = getEnv("REDIS_PASSWORD", "")

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}
	AppConfig.RedisDB = redisDB

	redisPoolSize, err := strconv.Atoi(getEnv("REDIS_POOL_SIZE", strconv.Itoa(runtime.NumCPU()*10)))
	if err != nil {
		redisPoolSize = runtime.NumCPU() * 10
	}
	AppConfig.RedisPoolSize = redisPoolSize

	// 数据库配置
	AppConfig.DBConnectionString = getEnv("DB_CONNECTION_STRING", "root:password@tcp(127.0.0.1:3306)/worknet?charset=utf8mb4&parseTime=True&loc=Local")

	dbMaxIdleConns, err := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "10"))
	if err != nil {
		dbMaxIdleConns = 10
	}
	AppConfig.DBMaxIdleConns = dbMaxIdleConns

	dbMaxOpenConns, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "100"))
	if err != nil {
		dbMaxOpenConns = 100
	}
	AppConfig.DBMaxOpenConns = dbMaxOpenConns

	// 缓存配置
	cacheExpiration, err := strconv.Atoi(getEnv("CACHE_EXPIRATION", "300"))
	if err != nil {
		cacheExpiration = 300
	}
	AppConfig.CacheExpiration = cacheExpiration

	// 文件上传配置
	AppConfig.UploadDir = getEnv("UPLOAD_DIR", "./uploads")
	AppConfig.UploadBaseURL = getEnv("UPLOAD_BASE_URL", "/uploads")

	maxUploadMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "100"), 10, 64)
	if err != nil {
		maxUploadMB = 100
	}
	AppConfig.MaxUploadMB = maxUploadMB

	// 限流配置
	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "60"))
	if err != nil {
		rateLimit = 60
	}
	AppConfig.RateLimitPerMinute = rateLimit

	log.Println("配置加载完成")
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
