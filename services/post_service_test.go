package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worknet/models"
	"worknet/services"
)

func TestCreatePost(t *testing.T) {
	db := newTestDB(t)
	userSvc := newTestUserService(t, db)
	svc := services.NewPostService(db, userSvc)
	user := createUser(t, userSvc, "张伟", "zhangwei@example.com")

	post, err := svc.CreatePost(user.ID, "第一条动态", "", "")
	require.NoError(t, err)
	assert.Equal(t, "第一条动态", post.Content)
	assert.Equal(t, user.ID, post.Author.ID)
	assert.Equal(t, "张伟", post.Author.Name)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestCreatePost_EmptyContent(t *testing.T) {
	db := newTestDB(t)
	userSvc := newTestUserService(t, db)
	svc := services.NewPostService(db, userSvc)
	user := createUser(t, userSvc, "张伟", "zhangwei@example.com")

	_, err := svc.CreatePost(user.ID, "   ", "", "")
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestToggleLike_Idempotent(t *testing.T) {
	db := newTestDB(t)
	userSvc := newTestUserService(t, db)
	svc := services.NewPostService(db, userSvc)
	author := createUser(t, userSvc, "张伟", "zhangwei@example.com")
	liker := createUser(t, userSvc, "李娜", "lina@example.com")

	post, err := svc.CreatePost(author.ID, "点个赞", "", "")
	require.NoError(t, err)

	// 第一次点赞
	liked, err := svc.ToggleLike(post.ID, liker.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{liker.ID}, liked.Likes)

	// 第二次取消，回到原始状态
	unliked, err := svc.ToggleLike(post.ID, liker.ID)
	require.NoError(t, err)
	assert.Len(t, unliked.Likes, 0)
}

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	userSvc := newTestUserService(t, db)
	svc := services.NewPostService(db, userSvc)
	author := createUser(t, userSvc, "张伟", "zhangwei@example.com")
	commenter := createUser(t, userSvc, "李娜", "lina@example.com")

	post, err := svc.CreatePost(author.ID, "欢迎评论", "", "")
	require.NoError(t, err)

	_, err = svc.AddComment(post.ID, commenter.ID, "沙发")
	require.NoError(t, err)
	updated, err := svc.AddComment(post.ID, author.ID, "谢谢")
	require.NoError(t, err)

	// 评论按追加顺序保存，作者信息已解析
	require.Len(t, updated.Comments, 2)
	assert.Equal(t, "沙发", updated.Comments[0].Content)
	assert.Equal(t, "李娜", updated.Comments[0].Author.Name)
	assert.Equal(t, "谢谢", updated.Comments[1].Content)
	assert.False(t, updated.Comments[1].CreatedAt.IsZero())
}

func TestAddComment_EmptyContent(t *testing.T) {
	db := newTestDB(t)
	userSvc := newTestUserService(t, db)
	svc := services.NewPostService(db, userSvc)
	author := createUser(t, userSvc, "张伟", "zhangwei@example.com")

	post, err := svc.CreatePost(author.ID, "欢迎评论", "", "")
	require.NoError(t, err)

	_, err = svc.AddComment(post.ID, author.ID, "")
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestDeletePost_AuthorOnly(t *testing.T) {
	db := newTestDB(t)
	userSvc := newTestUserService(t, db)
	svc := services.NewPostService(db, userSvc)
	author := createUser(t, userSvc, "张伟", "zhangwei@example.com")
	other := createUser(t, userSvc, "李娜", "lina@example.com")

	post, err := svc.CreatePost(author.ID, "待删除", "", "")
	require.NoError(t, err)

	// 非作者删除被拒绝
	err = svc.DeletePost(post.ID, other.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// 作者删除成功，帖子连同评论一并消失
	err = svc.DeletePost(post.ID, author.ID)
	require.NoError(t, err)

	err = svc.DeletePost(post.ID, author.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestGetPosts_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	userSvc := newTestUserService(t, db)
	svc := services.NewPostService(db, userSvc)
	author := createUser(t, userSvc, "张伟", "zhangwei@example.com")

	first, err := svc.CreatePost(author.ID, "第一条", "", "")
	require.NoError(t, err)
	second, err := svc.CreatePost(author.ID, "第二条", "", "")
	require.NoError(t, err)

	// 数据库时间精度可能相同，手动错开创建时间
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", first.ID).
		Update("created_at", first.CreatedAt.Add(-time.Second)).Error)

	posts, err := svc.GetPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}
