package models

import (
	"time"
)

// MediaType 附件类型
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Comment 帖子评论（内嵌子文档，只增不改）
type Comment struct {
	AuthorID  uint      `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Post 帖子模型，点赞和评论以JSON子文档形式内嵌
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"not null"`
	Media     string    `json:"media"`
	MediaType MediaType `json:"media_type"`
	Likes     []uint    `json:"likes" gorm:"serializer:json"`
	Comments  []Comment `json:"comments" gorm:"serializer:json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentResponse 评论响应模型，附带作者摘要
type CommentResponse struct {
	Author    *UserSummary `json:"author"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

// PostResponse 帖子响应模型，作者与评论作者均已解析
type PostResponse struct {
	ID        uint              `json:"id"`
	Author    UserSummary       `json:"author"`
	Content   string            `json:"content"`
	Media     string            `json:"media,omitempty"`
	MediaType MediaType         `json:"media_type,omitempty"`
	Likes     []uint            `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
}
