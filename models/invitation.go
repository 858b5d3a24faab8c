package models

import (
	"time"
)

// InvitationStatus 邀请状态，只允许 pending 单向流转到 accepted 或 declined
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// CalendarInvitation 日程邀请，事件字段和发送者姓名为发送时快照
type CalendarInvitation struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	EventID          string           `json:"event_id" gorm:"not null"`
	EventDate        string           `json:"event_date" gorm:"not null;size:16"`
	EventName        string           `json:"event_name" gorm:"not null"`
	EventDescription string           `json:"event_description"`
	EventTime        string           `json:"event_time"`
	SenderID         uint             `json:"sender_id" gorm:"not null"`
	SenderName       string           `json:"sender_name" gorm:"not null"`
	RecipientID      uint             `json:"recipient_id" gorm:"not null;index"`
	Status           InvitationStatus `json:"status" gorm:"default:pending"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
