package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"worknet/models"
)

// InvitationService 日程邀请服务
type InvitationService struct {
	db              *gorm.DB
	userService     *UserService
	calendarService *CalendarService
}

// NewInvitationService 创建日程邀请服务
func NewInvitationService(db *gorm.DB, userService *UserService, calendarService *CalendarService) *InvitationService {
	return &InvitationService{
		db:              db,
		userService:     userService,
		calendarService: calendarService,
	}
}

// SendInvitation 发送邀请，事件字段和发送者姓名为发送时快照
// 同一(日程,发送者,接收者)已有待处理邀请时拒绝重复发送
func (s *InvitationService) SendInvitation(senderID, recipientID uint, eventID, eventDate, eventName, eventDescription, eventTime string) (*models.CalendarInvitation, error) {
	if recipientID == 0 || eventID == "" || eventDate == "" || strings.TrimSpace(eventName) == "" {
		return nil, fmt.Errorf("%w: 接收者、日程ID、日期和名称均为必填", ErrValidation)
	}

	sender, err := s.userService.GetUserByID(senderID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userService.GetUserByID(recipientID); err != nil {
		return nil, err
	}

	// 检查是否已有待处理的同一邀请
	var existing models.CalendarInvitation
	err = s.db.Where("event_id = ? AND event_date = ? AND sender_id = ? AND recipient_id = ? AND status = ?",
		eventID, eventDate, senderID, recipientID, models.InvitationPending).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: 邀请已发送，等待对方处理", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	invitation := models.CalendarInvitation{
		EventID:          eventID,
		EventDate:        eventDate,
		EventName:        eventName,
		EventDescription: eventDescription,
		EventTime:        eventTime,
		SenderID:         senderID,
		SenderName:       sender.Name,
		RecipientID:      recipientID,
		Status:           models.InvitationPending,
	}

	if err := s.db.Create(&invitation).Error; err != nil {
		return nil, err
	}

	return &invitation, nil
}

// GetPendingInvitations 获取用户的待处理邀请，按时间倒序
func (s *InvitationService) GetPendingInvitations(userID uint) ([]models.CalendarInvitation, error) {
	var invitations []models.CalendarInvitation
	if err := s.db.
		Where("recipient_id = ? AND status = ?", userID, models.InvitationPending).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// AcceptInvitation 接受邀请：状态流转、接收者日历新增日程副本、
// 发送者原日程追加参与者，三个写入在同一事务中完成
func (s *InvitationService) AcceptInvitation(invitationID, userID uint) (*models.CalendarInvitation, *models.CalendarEventResponse, error) {
	invitation, err := s.getPendingForRecipient(invitationID, userID)
	if err != nil {
		return nil, nil, err
	}

	recipient, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, nil, err
	}

	var recipientEvent *models.CalendarEvent
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// 状态只允许从pending单向流转
		invitation.Status = models.InvitationAccepted
		if err := tx.Save(invitation).Error; err != nil {
			return err
		}

		// 把日程副本写入接收者的日历，双方均记为已接受
		entry := models.CalendarEntry{
			ID:          invitation.EventID,
			Name:        invitation.EventName,
			Description: invitation.EventDescription,
			Time:        invitation.EventTime,
			Attendees: []models.Attendee{
				{UserID: invitation.SenderID, Name: invitation.SenderName, Status: models.AttendeeAccepted},
				{UserID: userID, Name: recipient.Name, Status: models.AttendeeAccepted},
			},
			CreatedBy: invitation.SenderID,
		}

		event, err := s.calendarService.upsert(tx, userID, invitation.EventDate, func(event *models.CalendarEvent) {
			event.Events = append(event.Events, entry)
		})
		if err != nil {
			return err
		}
		recipientEvent = event

		// 把接收者追加为发送者原日程的参与者，按日程ID匹配
		senderEvent, err := s.calendarService.findByDate(tx, invitation.SenderID, invitation.EventDate)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: 发送者的日历记录不存在", ErrNotFound)
			}
			return err
		}

		for i := range senderEvent.Events {
			if senderEvent.Events[i].ID == invitation.EventID {
				senderEvent.Events[i].Attendees = append(senderEvent.Events[i].Attendees, models.Attendee{
					UserID: userID,
					Name:   recipient.Name,
					Status: models.AttendeeAccepted,
				})
				return tx.Save(senderEvent).Error
			}
		}
		return fmt.Errorf("%w: 发送者的日程不存在", ErrNotFound)
	})
	if err != nil {
		return nil, nil, err
	}

	resp := recipientEvent.ToResponse()
	return invitation, &resp, nil
}

// DeclineInvitation 拒绝邀请，状态流转后不可再处理
func (s *InvitationService) DeclineInvitation(invitationID, userID uint) (*models.CalendarInvitation, error) {
	invitation, err := s.getPendingForRecipient(invitationID, userID)
	if err != nil {
		return nil, err
	}

	invitation.Status = models.InvitationDeclined
	if err := s.db.Save(invitation).Error; err != nil {
		return nil, err
	}
	return invitation, nil
}

// getPendingForRecipient 加载邀请并校验接收者身份和待处理状态
func (s *InvitationService) getPendingForRecipient(invitationID, userID uint) (*models.CalendarInvitation, error) {
	var invitation models.CalendarInvitation
	if err := s.db.First(&invitation, invitationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 邀请不存在", ErrNotFound)
		}
		return nil, err
	}

	if invitation.RecipientID != userID {
		return nil, fmt.Errorf("%w: 只有接收者可以处理邀请", ErrForbidden)
	}

	if invitation.Status != models.InvitationPending {
		return nil, fmt.Errorf("%w: 邀请已处理", ErrConflict)
	}

	return &invitation, nil
}
