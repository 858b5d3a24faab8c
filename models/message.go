package models

import (
	"time"
)

// Message 私信模型，发送后内容不可变，已读标记只能从false翻转为true
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"not null;index:idx_msg_pair"`
	ReceiverID uint      `json:"receiver_id" gorm:"not null;index:idx_msg_pair"`
	Content    string    `json:"content" gorm:"not null"`
	Read       bool      `json:"read" gorm:"column:is_read;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

// MessageResponse 私信响应模型，附带双方摘要
type MessageResponse struct {
	ID        uint        `json:"id"`
	Sender    UserSummary `json:"sender"`
	Receiver  UserSummary `json:"receiver"`
	Content   string      `json:"content"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"created_at"`
}

// Conversation 会话列表条目，每个对话对象只保留最近一条消息
type Conversation struct {
	User        UserSummary     `json:"user"`
	LastMessage MessageResponse `json:"last_message"`
}
