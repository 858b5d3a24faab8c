package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"worknet/models"
)

// PostService 帖子服务
type PostService struct {
	db          *gorm.DB
	userService *UserService
}

// NewPostService 创建帖子服务
func NewPostService(db *gorm.DB, userService *UserService) *PostService {
	return &PostService{
		db:          db,
		userService: userService,
	}
}

// GetPosts 获取帖子列表，按创建时间倒序
func (s *PostService) GetPosts() ([]models.PostResponse, error) {
	var posts []models.Post
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}

	// 收集所有涉及的用户ID，一次性解析作者信息
	idSet := make(map[uint]struct{})
	for _, post := range posts {
		idSet[post.AuthorID] = struct{}{}
		for _, comment := range post.Comments {
			idSet[comment.AuthorID] = struct{}{}
		}
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	summaries, err := s.userService.GetUserSummaries(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]models.PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = s.toResponse(&post, summaries)
	}
	return responses, nil
}

// CreatePost 发布帖子，内容必填，附件可选
func (s *PostService) CreatePost(authorID uint, content, media string, mediaType models.MediaType) (*models.PostResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: 帖子内容不能为空", ErrValidation)
	}

	post := models.Post{
		AuthorID:  authorID,
		Content:   content,
		Media:     media,
		MediaType: mediaType,
		Likes:     []uint{},
		Comments:  []models.Comment{},
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	return s.resolvePost(&post)
}

// ToggleLike 点赞开关：已点赞则取消，未点赞则添加，始终返回帖子当前状态
func (s *PostService) ToggleLike(postID, userID uint) (*models.PostResponse, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, id := range post.Likes {
		if id == userID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		post.Likes = append(post.Likes[:idx], post.Likes[idx+1:]...)
	} else {
		post.Likes = append(post.Likes, userID)
	}

	if err := s.db.Save(post).Error; err != nil {
		return nil, err
	}

	return s.resolvePost(post)
}

// AddComment 追加评论，带服务端时间戳，评论列表只增不删
func (s *PostService) AddComment(postID, authorID uint, content string) (*models.PostResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: 评论内容不能为空", ErrValidation)
	}

	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}

	post.Comments = append(post.Comments, models.Comment{
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	})

	if err := s.db.Save(post).Error; err != nil {
		return nil, err
	}

	return s.resolvePost(post)
}

// DeletePost 删除帖子，只有作者本人可以删除，点赞和评论随文档一并删除
func (s *PostService) DeletePost(postID, userID uint) error {
	post, err := s.getPost(postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return fmt.Errorf("%w: 只有作者可以删除帖子", ErrForbidden)
	}

	return s.db.Delete(&models.Post{}, postID).Error
}

// getPost 根据ID获取帖子
func (s *PostService) getPost(postID uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 帖子不存在", ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// resolvePost 解析单个帖子的作者信息
func (s *PostService) resolvePost(post *models.Post) (*models.PostResponse, error) {
	ids := []uint{post.AuthorID}
	for _, comment := range post.Comments {
		ids = append(ids, comment.AuthorID)
	}

	summaries, err := s.userService.GetUserSummaries(ids)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(post, summaries)
	return &resp, nil
}

// toResponse 构建帖子响应，已删除用户的评论作者置空
func (s *PostService) toResponse(post *models.Post, summaries map[uint]models.UserSummary) models.PostResponse {
	likes := post.Likes
	if likes == nil {
		likes = []uint{}
	}

	comments := make([]models.CommentResponse, len(post.Comments))
	for i, comment := range post.Comments {
		var author *models.UserSummary
		if summary, ok := summaries[comment.AuthorID]; ok {
			author = &summary
		}
		comments[i] = models.CommentResponse{
			Author:    author,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
	}

	return models.PostResponse{
		ID:        post.ID,
		Author:    summaries[post.AuthorID],
		Content:   post.Content,
		Media:     post.Media,
		MediaType: post.MediaType,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: post.CreatedAt,
	}
}
