package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"worknet/config"
	"worknet/models"
)

// UserService 用户服务
type UserService struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewUserService 创建用户服务
func NewUserService(db *gorm.DB, rdb *redis.Client) *UserService {
	return &UserService{
		db:  db,
		rdb: rdb,
	}
}

// Register 用户注册
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: 姓名、邮箱和密码均为必填", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: 密码长度至少6位", ErrValidation)
	}

	// 检查邮箱是否已注册
	var existingUser models.User
	if err := s.db.Where("email = ?", email).First(&existingUser).Error; err == nil {
		return nil, fmt.Errorf("%w: 邮箱已被注册", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 哈希密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     "visitor",
	}

	if err := s.db.Create(&newUser).Error; err != nil {
		return nil, err
	}

	return &newUser, nil
}

// Login 用户登录，未知邮箱和密码错误返回同一个错误，不泄露具体原因
func (s *UserService) Login(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: 邮箱和密码均为必填", ErrValidation)
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 邮箱或密码错误", ErrAuth)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: 邮箱或密码错误", ErrAuth)
	}

	return &user, nil
}

// GetAllUsers 获取所有用户
func (s *UserService) GetAllUsers() ([]models.UserResponse, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}

	userResponses := make([]models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()
	}
	return userResponses, nil
}

// GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User

	// 先尝试从缓存获取
	ctx := context.Background()
	key := fmt.Sprintf("user:%d", id)

	userJSON, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		// 缓存命中
		if err := json.Unmarshal([]byte(userJSON), &user); err == nil {
			return &user, nil
		}
	}

	// 从数据库获取
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return nil, err
	}

	// 更新缓存
	userBytes, _ := json.Marshal(user)
	s.rdb.Set(ctx, key, userBytes, time.Duration(config.AppConfig.CacheExpiration)*time.Second)

	return &user, nil
}

// GetUserResponse 根据ID获取用户响应信息
func (s *UserService) GetUserResponse(id uint) (*models.UserResponse, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// ProfileUpdate 个人资料更新项，空字段保持原值
type ProfileUpdate struct {
	Name         string
	Tag          string
	Position     string
	About        string
	ProfilePhoto string
	CoverPhoto   string
}

// UpdateProfile 更新个人资料，只允许令牌持有者更新自己的记录
func (s *UserService) UpdateProfile(id uint, update ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Tag != "" {
		user.Tag = update.Tag
	}
	if update.Position != "" {
		user.Position = update.Position
	}
	if update.About != "" {
		user.About = update.About
	}
	if update.ProfilePhoto != "" {
		user.ProfilePhoto = update.ProfilePhoto
	}
	if update.CoverPhoto != "" {
		user.CoverPhoto = update.CoverPhoto
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	// 删除缓存
	ctx := context.Background()
	key := fmt.Sprintf("user:%d", id)
	s.rdb.Del(ctx, key)

	return &user, nil
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(id uint, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: 新密码长度至少6位", ErrValidation)
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return err
	}

	// 验证旧密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: 旧密码错误", ErrAuth)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)

	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	return nil
}

// GetUserSummaries 批量获取用户摘要，查不到的ID跳过
func (s *UserService) GetUserSummaries(ids []uint) (map[uint]models.UserSummary, error) {
	if len(ids) == 0 {
		return map[uint]models.UserSummary{}, nil
	}

	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	summaries := make(map[uint]models.UserSummary, len(users))
	for _, user := range users {
		summaries[user.ID] = user.ToSummary()
	}
	return summaries, nil
}
