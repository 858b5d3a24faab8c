package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"worknet/models"
)

// MessageService 私信服务
type MessageService struct {
	db          *gorm.DB
	userService *UserService
}

// NewMessageService 创建私信服务
func NewMessageService(db *gorm.DB, userService *UserService) *MessageService {
	return &MessageService{
		db:          db,
		userService: userService,
	}
}

// SendMessage 发送私信，接收者必须存在，内容去除首尾空白后不能为空
func (s *MessageService) SendMessage(senderID, receiverID uint, content string) (*models.MessageResponse, error) {
	content = strings.TrimSpace(content)
	if receiverID == 0 || content == "" {
		return nil, fmt.Errorf("%w: 接收者和内容均为必填", ErrValidation)
	}

	// 检查接收者是否存在
	if _, err := s.userService.GetUserByID(receiverID); err != nil {
		return nil, err
	}

	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Read:       false,
	}

	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}

	return s.resolveMessage(&msg)
}

// GetConversation 获取与指定用户的全部往来消息，按时间正序
func (s *MessageService) GetConversation(userID, otherUserID uint) ([]models.MessageResponse, error) {
	var messages []models.Message
	if err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	summaries, err := s.userService.GetUserSummaries([]uint{userID, otherUserID})
	if err != nil {
		return nil, err
	}

	responses := make([]models.MessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = toMessageResponse(&msg, summaries)
	}
	return responses, nil
}

// MarkAsRead 将对方发给当前用户的未读消息全部标记为已读
func (s *MessageService) MarkAsRead(userID, otherUserID uint) error {
	return s.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherUserID, userID, false).
		Update("is_read", true).Error
}

// GetConversations 获取会话列表，每个对话对象只保留最近一条消息
func (s *MessageService) GetConversations(userID uint) ([]models.Conversation, error) {
	var messages []models.Message
	if err := s.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	// 按对话对象去重，消息已按时间倒序，首次出现即最近一条
	seen := make(map[uint]*models.Message)
	order := make([]uint, 0)
	for i := range messages {
		msg := &messages[i]
		otherID := msg.SenderID
		if otherID == userID {
			otherID = msg.ReceiverID
		}
		if _, ok := seen[otherID]; !ok {
			seen[otherID] = msg
			order = append(order, otherID)
		}
	}

	ids := append([]uint{userID}, order...)
	summaries, err := s.userService.GetUserSummaries(ids)
	if err != nil {
		return nil, err
	}

	conversations := make([]models.Conversation, 0, len(order))
	for _, otherID := range order {
		conversations = append(conversations, models.Conversation{
			User:        summaries[otherID],
			LastMessage: toMessageResponse(seen[otherID], summaries),
		})
	}
	return conversations, nil
}

// resolveMessage 解析单条消息的双方信息
func (s *MessageService) resolveMessage(msg *models.Message) (*models.MessageResponse, error) {
	summaries, err := s.userService.GetUserSummaries([]uint{msg.SenderID, msg.ReceiverID})
	if err != nil {
		return nil, err
	}
	resp := toMessageResponse(msg, summaries)
	return &resp, nil
}

func toMessageResponse(msg *models.Message, summaries map[uint]models.UserSummary) models.MessageResponse {
	return models.MessageResponse{
		ID:        msg.ID,
		Sender:    summaries[msg.SenderID],
		Receiver:  summaries[msg.ReceiverID],
		Content:   msg.Content,
		Read:      msg.Read,
		CreatedAt: msg.CreatedAt,
	}
}
