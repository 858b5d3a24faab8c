package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"worknet/models"
)

// GroupService 群组服务
type GroupService struct {
	db          *gorm.DB
	userService *UserService
}

// NewGroupService 创建群组服务
func NewGroupService(db *gorm.DB, userService *UserService) *GroupService {
	return &GroupService{
		db:          db,
		userService: userService,
	}
}

// CreateGroup 创建群组，创建者自动成为成员，传入的成员ID自动去重
func (s *GroupService) CreateGroup(creatorID uint, name, description string, memberIDs []uint) (*models.GroupResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: 群组名不能为空", ErrValidation)
	}

	// 创建者排第一位，其余成员去重
	unique := []uint{creatorID}
	seen := map[uint]struct{}{creatorID: {}}
	for _, id := range memberIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	group := &models.Group{
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatorID:   creatorID,
	}

	// 群组和成员关系在同一事务中写入
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		for _, id := range unique {
			member := models.GroupMember{
				GroupID:  group.ID,
				UserID:   id,
				JoinedAt: time.Now(),
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetGroupResponse(group.ID, creatorID)
}

// GetGroupByID 根据ID获取群组
func (s *GroupService) GetGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 群组不存在", ErrNotFound)
		}
		return nil, err
	}
	return &group, nil
}

// GetGroupResponse 获取群组详情，仅成员可见
func (s *GroupService) GetGroupResponse(groupID, userID uint) (*models.GroupResponse, error) {
	group, err := s.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.getMemberIDs(groupID)
	if err != nil {
		return nil, err
	}

	if !contains(memberIDs, userID) {
		return nil, fmt.Errorf("%w: 不是群组成员", ErrForbidden)
	}

	return s.buildResponse(group, memberIDs)
}

// GetUserGroups 获取用户加入的所有群组，按最近更新排序
func (s *GroupService) GetUserGroups(userID uint) ([]models.GroupResponse, error) {
	var groupIDs []uint
	if err := s.db.Model(&models.GroupMember{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &groupIDs).Error; err != nil {
		return nil, err
	}

	var groups []models.Group
	if err := s.db.Where("id IN ?", groupIDs).Order("updated_at DESC").Find(&groups).Error; err != nil {
		return nil, err
	}

	responses := make([]models.GroupResponse, 0, len(groups))
	for i := range groups {
		memberIDs, err := s.getMemberIDs(groups[i].ID)
		if err != nil {
			return nil, err
		}
		resp, err := s.buildResponse(&groups[i], memberIDs)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// AddMembers 添加成员，仅创建者可操作，已在群内的ID自动过滤
func (s *GroupService) AddMembers(groupID, userID uint, memberIDs []uint) (*models.GroupResponse, error) {
	if len(memberIDs) == 0 {
		return nil, fmt.Errorf("%w: 成员ID列表不能为空", ErrValidation)
	}

	group, err := s.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}

	if group.CreatorID != userID {
		return nil, fmt.Errorf("%w: 只有创建者可以添加成员", ErrForbidden)
	}

	current, err := s.getMemberIDs(groupID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{}, len(current))
	for _, id := range current {
		seen[id] = struct{}{}
	}

	for _, id := range memberIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		member := models.GroupMember{
			GroupID:  groupID,
			UserID:   id,
			JoinedAt: time.Now(),
		}
		if err := s.db.Create(&member).Error; err != nil {
			return nil, err
		}
	}

	// 刷新群组更新时间
	s.db.Model(group).Update("updated_at", time.Now())

	return s.GetGroupResponse(groupID, userID)
}

// RemoveMember 移除成员，仅创建者可操作，创建者本人不可被移除
func (s *GroupService) RemoveMember(groupID, userID, memberID uint) (*models.GroupResponse, error) {
	group, err := s.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}

	if group.CreatorID != userID {
		return nil, fmt.Errorf("%w: 只有创建者可以移除成员", ErrForbidden)
	}

	if memberID == group.CreatorID {
		return nil, fmt.Errorf("%w: 不能移除群组创建者", ErrForbidden)
	}

	if err := s.db.Where("group_id = ? AND user_id = ?", groupID, memberID).
		Delete(&models.GroupMember{}).Error; err != nil {
		return nil, err
	}

	return s.GetGroupResponse(groupID, userID)
}

// DeleteGroup 删除群组，仅创建者可操作，群聊消息级联删除
func (s *GroupService) DeleteGroup(groupID, userID uint) error {
	group, err := s.GetGroupByID(groupID)
	if err != nil {
		return err
	}

	if group.CreatorID != userID {
		return fmt.Errorf("%w: 只有创建者可以删除群组", ErrForbidden)
	}

	// 群组、成员关系和消息在同一事务中删除
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
}

// SendGroupMessage 发送群聊消息，发送时必须是当前成员
func (s *GroupService) SendGroupMessage(groupID, senderID uint, content string) (*models.GroupMessageResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: 消息内容不能为空", ErrValidation)
	}

	if err := s.requireMember(groupID, senderID); err != nil {
		return nil, err
	}

	msg := models.GroupMessage{
		GroupID:  groupID,
		SenderID: senderID,
		Content:  content,
	}

	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}

	summaries, err := s.userService.GetUserSummaries([]uint{senderID})
	if err != nil {
		return nil, err
	}

	return &models.GroupMessageResponse{
		ID:        msg.ID,
		GroupID:   msg.GroupID,
		Sender:    summaries[senderID],
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}, nil
}

// GetGroupMessages 获取群聊消息，仅成员可见，按时间正序
func (s *GroupService) GetGroupMessages(groupID, userID uint) ([]models.GroupMessageResponse, error) {
	if err := s.requireMember(groupID, userID); err != nil {
		return nil, err
	}

	var messages []models.GroupMessage
	if err := s.db.Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	idSet := make(map[uint]struct{})
	ids := make([]uint, 0)
	for _, msg := range messages {
		if _, ok := idSet[msg.SenderID]; !ok {
			idSet[msg.SenderID] = struct{}{}
			ids = append(ids, msg.SenderID)
		}
	}

	summaries, err := s.userService.GetUserSummaries(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]models.GroupMessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = models.GroupMessageResponse{
			ID:        msg.ID,
			GroupID:   msg.GroupID,
			Sender:    summaries[msg.SenderID],
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		}
	}
	return responses, nil
}

// requireMember 校验用户是群组当前成员
func (s *GroupService) requireMember(groupID, userID uint) error {
	if _, err := s.GetGroupByID(groupID); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: 不是群组成员", ErrForbidden)
	}
	return nil
}

// getMemberIDs 获取群组成员ID列表，按加入时间排序
func (s *GroupService) getMemberIDs(groupID uint) ([]uint, error) {
	var memberIDs []uint
	if err := s.db.Model(&models.GroupMember{}).
		Where("group_id = ?", groupID).
		Order("joined_at ASC").
		Pluck("user_id", &memberIDs).Error; err != nil {
		return nil, err
	}
	return memberIDs, nil
}

// buildResponse 构建群组响应
func (s *GroupService) buildResponse(group *models.Group, memberIDs []uint) (*models.GroupResponse, error) {
	ids := append([]uint{group.CreatorID}, memberIDs...)
	summaries, err := s.userService.GetUserSummaries(ids)
	if err != nil {
		return nil, err
	}

	members := make([]models.UserSummary, 0, len(memberIDs))
	for _, id := range memberIDs {
		if summary, ok := summaries[id]; ok {
			members = append(members, summary)
		}
	}

	return &models.GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		Creator:     summaries[group.CreatorID],
		Members:     members,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}, nil
}

func contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
