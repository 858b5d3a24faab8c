package models

import (
	"time"
)

// AttendeeStatus 参与者状态
type AttendeeStatus string

const (
	AttendeePending  AttendeeStatus = "pending"
	AttendeeAccepted AttendeeStatus = "accepted"
	AttendeeDeclined AttendeeStatus = "declined"
)

// Attendee 日程参与者，名字为写入时快照，不随用户改名同步
type Attendee struct {
	UserID uint           `json:"user_id"`
	Name   string         `json:"name"`
	Status AttendeeStatus `json:"status"`
}

// CalendarEntry 单条日程，ID为生成的稳定标识，删除和邀请均按ID匹配
type CalendarEntry struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Time        string     `json:"time"` // 24小时制 "HH:MM"
	Attendees   []Attendee `json:"attendees"`
	CreatedBy   uint       `json:"created_by"`
}

// CalendarEvent 日历文档，每个(用户,日期)组合唯一一条
// 日期为不补零的 "YYYY-M-D" 字符串键，范围查询按字典序比较
type CalendarEvent struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_user_date"`
	Date           string          `json:"date" gorm:"not null;uniqueIndex:idx_user_date;size:16"`
	WorkHoursStart string          `json:"-"`
	WorkHoursEnd   string          `json:"-"`
	Events         []CalendarEntry `json:"events" gorm:"serializer:json"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// WorkHours 上班时间段，start/end 均为 "HH:MM"
type WorkHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CalendarEventResponse 日历响应模型
type CalendarEventResponse struct {
	UserID    uint            `json:"user_id,omitempty"`
	Date      string          `json:"date,omitempty"`
	WorkHours WorkHours       `json:"workHours"`
	Events    []CalendarEntry `json:"events"`
}

// ToResponse 转换为响应模型
func (c *CalendarEvent) ToResponse() CalendarEventResponse {
	events := c.Events
	if events == nil {
		events = []CalendarEntry{}
	}
	return CalendarEventResponse{
		UserID:    c.UserID,
		Date:      c.Date,
		WorkHours: WorkHours{Start: c.WorkHoursStart, End: c.WorkHoursEnd},
		Events:    events,
	}
}
