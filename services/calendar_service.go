package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"worknet/models"
)

// CalendarService 日历服务，每个(用户,日期)组合对应唯一一条文档
type CalendarService struct {
	db *gorm.DB
}

// NewCalendarService 创建日历服务
func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{db: db}
}

// GetEvents 获取用户的日历文档，可按日期范围过滤
// 日期键为不补零的 "YYYY-M-D" 字符串，范围比较为字典序，调用方需保持格式一致
func (s *CalendarService) GetEvents(userID uint, startDate, endDate string) ([]models.CalendarEventResponse, error) {
	query := s.db.Where("user_id = ?", userID)
	if startDate != "" && endDate != "" {
		query = query.Where("date >= ? AND date <= ?", startDate, endDate)
	}

	var events []models.CalendarEvent
	if err := query.Order("date ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	responses := make([]models.CalendarEventResponse, len(events))
	for i := range events {
		responses[i] = events[i].ToResponse()
	}
	return responses, nil
}

// GetEventByDate 获取指定日期的日历文档，不存在时返回空结构而非错误
func (s *CalendarService) GetEventByDate(userID uint, date string) (*models.CalendarEventResponse, error) {
	event, err := s.findByDate(s.db, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.CalendarEventResponse{
				WorkHours: models.WorkHours{},
				Events:    []models.CalendarEntry{},
			}, nil
		}
		return nil, err
	}

	resp := event.ToResponse()
	return &resp, nil
}

// SaveWorkHours 保存上班时间，开始必须早于结束，按(用户,日期)做upsert
func (s *CalendarService) SaveWorkHours(userID uint, date, start, end string) (*models.CalendarEventResponse, error) {
	if date == "" || start == "" || end == "" {
		return nil, fmt.Errorf("%w: 日期、开始时间和结束时间均为必填", ErrValidation)
	}
	if start >= end {
		return nil, fmt.Errorf("%w: 结束时间必须晚于开始时间", ErrValidation)
	}

	event, err := s.upsert(s.db, userID, date, func(event *models.CalendarEvent) {
		event.WorkHoursStart = start
		event.WorkHoursEnd = end
	})
	if err != nil {
		return nil, err
	}

	resp := event.ToResponse()
	return &resp, nil
}

// AddEvent 添加日程，名称和时间必填，每条日程分配稳定的生成ID
func (s *CalendarService) AddEvent(userID uint, date, name, description, eventTime string) (*models.CalendarEventResponse, error) {
	if date == "" || strings.TrimSpace(name) == "" || eventTime == "" {
		return nil, fmt.Errorf("%w: 日期、日程名称和时间均为必填", ErrValidation)
	}

	entry := models.CalendarEntry{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Time:        eventTime,
		Attendees:   []models.Attendee{},
		CreatedBy:   userID,
	}

	event, err := s.upsert(s.db, userID, date, func(event *models.CalendarEvent) {
		event.Events = append(event.Events, entry)
	})
	if err != nil {
		return nil, err
	}

	resp := event.ToResponse()
	return &resp, nil
}

// DeleteEvent 按日程ID删除，不再使用位置下标，避免并发编辑时删错
func (s *CalendarService) DeleteEvent(userID uint, date, entryID string) (*models.CalendarEventResponse, error) {
	if date == "" || entryID == "" {
		return nil, fmt.Errorf("%w: 日期和日程ID均为必填", ErrValidation)
	}

	event, err := s.findByDate(s.db, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 日历记录不存在", ErrNotFound)
		}
		return nil, err
	}

	idx := -1
	for i, entry := range event.Events {
		if entry.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: 日程不存在", ErrNotFound)
	}

	event.Events = append(event.Events[:idx], event.Events[idx+1:]...)
	if err := s.db.Save(event).Error; err != nil {
		return nil, err
	}

	resp := event.ToResponse()
	return &resp, nil
}

// DeleteDate 删除指定日期的整条日历文档
func (s *CalendarService) DeleteDate(userID uint, date string) error {
	return s.db.Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.CalendarEvent{}).Error
}

// GetEventAttendees 获取指定日程的参与者列表
func (s *CalendarService) GetEventAttendees(userID uint, date, entryID string) ([]models.Attendee, error) {
	event, err := s.findByDate(s.db, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 日历记录不存在", ErrNotFound)
		}
		return nil, err
	}

	for _, entry := range event.Events {
		if entry.ID == entryID {
			if entry.Attendees == nil {
				return []models.Attendee{}, nil
			}
			return entry.Attendees, nil
		}
	}
	return nil, fmt.Errorf("%w: 日程不存在", ErrNotFound)
}

// findByDate 查询(用户,日期)对应的文档
func (s *CalendarService) findByDate(tx *gorm.DB, userID uint, date string) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := tx.Where("user_id = ? AND date = ?", userID, date).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// upsert 查到则修改保存，查不到则新建，(user_id,date)唯一索引兜底
func (s *CalendarService) upsert(tx *gorm.DB, userID uint, date string, mutate func(*models.CalendarEvent)) (*models.CalendarEvent, error) {
	event, err := s.findByDate(tx, userID, date)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		event = &models.CalendarEvent{
			UserID: userID,
			Date:   date,
			Events: []models.CalendarEntry{},
		}
	}

	mutate(event)

	if err := tx.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}
