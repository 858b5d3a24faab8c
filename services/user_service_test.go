package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worknet/services"
)

func TestRegister(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))

	user, err := svc.Register("张伟", "zhangwei@example.com", "password123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "zhangwei@example.com", user.Email)
	assert.NotEqual(t, "password123", user.Password, "密码必须以哈希形式存储")

	// 响应模型不包含密码哈希
	resp := user.ToResponse()
	assert.Equal(t, user.ID, resp.ID)
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))

	_, err := svc.Register("", "a@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = svc.Register("张伟", "a@example.com", "short")
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))

	_, err := svc.Register("张伟", "same@example.com", "password123")
	require.NoError(t, err)

	// 同一邮箱第二次注册返回冲突
	_, err = svc.Register("李娜", "same@example.com", "password456")
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestLogin(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))
	user := createUser(t, svc, "张伟", "zhangwei@example.com")

	got, err := svc.Login("zhangwei@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))
	createUser(t, svc, "张伟", "zhangwei@example.com")

	// 未知邮箱和密码错误返回同一个错误
	_, errUnknown := svc.Login("nobody@example.com", "password123")
	_, errWrongPwd := svc.Login("zhangwei@example.com", "wrongpassword")

	assert.ErrorIs(t, errUnknown, services.ErrAuth)
	assert.ErrorIs(t, errWrongPwd, services.ErrAuth)
	assert.Equal(t, errUnknown.Error(), errWrongPwd.Error())
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))
	user := createUser(t, svc, "张伟", "zhangwei@example.com")

	updated, err := svc.UpdateProfile(user.ID, services.ProfileUpdate{
		Tag:      "后端",
		Position: "工程师",
		About:    "大家好",
	})
	require.NoError(t, err)
	assert.Equal(t, "后端", updated.Tag)
	assert.Equal(t, "工程师", updated.Position)
	// 未提供的字段保持原值
	assert.Equal(t, "张伟", updated.Name)
}

func TestChangePassword(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))
	user := createUser(t, svc, "张伟", "zhangwei@example.com")

	// 旧密码错误
	err := svc.ChangePassword(user.ID, "wrongpassword", "newpassword1")
	assert.ErrorIs(t, err, services.ErrAuth)

	// 正常修改后可用新密码登录
	err = svc.ChangePassword(user.ID, "password123", "newpassword1")
	require.NoError(t, err)

	_, err = svc.Login("zhangwei@example.com", "newpassword1")
	assert.NoError(t, err)
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc := newTestUserService(t, newTestDB(t))

	_, err := svc.GetUserByID(9999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
