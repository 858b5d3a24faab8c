package models

import (
	"time"
)

// User 用户模型
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"unique;not null"`
	Password     string    `json:"-" gorm:"not null"` // 密码哈希不返回给前端
	Role         string    `json:"role" gorm:"default:visitor"`
	Tag          string    `json:"tag"`
	Position     string    `json:"position"`
	About        string    `json:"about"`
	ProfilePhoto string    `json:"profilePhoto"`
	CoverPhoto   string    `json:"coverPhoto"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserResponse 用户响应模型（不包含敏感信息）
type UserResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Tag          string `json:"tag"`
	Position     string `json:"position"`
	About        string `json:"about"`
	ProfilePhoto string `json:"profilePhoto"`
	CoverPhoto   string `json:"coverPhoto"`
}

// ToResponse 转换为响应模型
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Tag:          u.Tag,
		Position:     u.Position,
		About:        u.About,
		ProfilePhoto: u.ProfilePhoto,
		CoverPhoto:   u.CoverPhoto,
	}
}

// UserSummary 用户摘要（用于作者、发送者等展示字段）
type UserSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProfilePhoto string `json:"profilePhoto"`
}

// ToSummary 转换为摘要模型
func (u *User) ToSummary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		ProfilePhoto: u.ProfilePhoto,
	}
}
