package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worknet/models"
	"worknet/services"
)

func TestSaveWorkHours(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCalendarService(db)
	userSvc := newTestUserService(t, db)
	u1 := createUser(t, userSvc, "张伟", "a@x.com")

	// 保存后按日期取回，时间段原样返回
	_, err := svc.SaveWorkHours(u1.ID, "2024-3-5", "09:00", "17:00")
	require.NoError(t, err)

	got, err := svc.GetEventByDate(u1.ID, "2024-3-5")
	require.NoError(t, err)
	assert.Equal(t, models.WorkHours{Start: "09:00", End: "17:00"}, got.WorkHours)

	// 结束早于开始被拒绝
	_, err = svc.SaveWorkHours(u1.ID, "2024-3-5", "18:00", "09:00")
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestSaveWorkHours_UpsertSameDate(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCalendarService(db)
	userSvc := newTestUserService(t, db)
	u1 := createUser(t, userSvc, "张伟", "a@x.com")

	_, err := svc.SaveWorkHours(u1.ID, "2024-3-5", "09:00", "17:00")
	require.NoError(t, err)
	_, err = svc.SaveWorkHours(u1.ID, "2024-3-5", "10:00", "18:00")
	require.NoError(t, err)

	// 同一(用户,日期)只有一条文档
	var count int64
	require.NoError(t, db.Model(&models.CalendarEvent{}).
		Where("user_id = ? AND date = ?", u1.ID, "2024-3-5").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := svc.GetEventByDate(u1.ID, "2024-3-5")
	require.NoError(t, err)
	assert.Equal(t, "10:00", got.WorkHours.Start)
}

func TestGetEventByDate_Absent(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCalendarService(db)

	// 无记录时返回空结构而非错误
	got, err := svc.GetEventByDate(42, "2024-3-5")
	require.NoError(t, err)
	assert.Equal(t, models.WorkHours{}, got.WorkHours)
	assert.Empty(t, got.Events)
}

func TestAddAndDeleteEvent(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCalendarService(db)
	userSvc := newTestUserService(t, db)
	u1 := createUser(t, userSvc, "张伟", "a@x.com")

	created, err := svc.AddEvent(u1.ID, "2024-3-5", "周会", "例行同步", "10:00")
	require.NoError(t, err)
	require.Len(t, created.Events, 1)
	entry := created.Events[0]
	assert.NotEmpty(t, entry.ID, "日程必须带稳定的生成ID")
	assert.Equal(t, u1.ID, entry.CreatedBy)

	_, err = svc.AddEvent(u1.ID, "2024-3-5", "评审", "", "14:00")
	require.NoError(t, err)

	// 按ID删除，剩下的日程不受影响
	after, err := svc.DeleteEvent(u1.ID, "2024-3-5", entry.ID)
	require.NoError(t, err)
	require.Len(t, after.Events, 1)
	assert.Equal(t, "评审", after.Events[0].Name)

	// 删除不存在的ID返回NotFound
	_, err = svc.DeleteEvent(u1.ID, "2024-3-5", "no-such-id")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAddEvent_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCalendarService(db)

	_, err := svc.AddEvent(1, "2024-3-5", "  ", "", "10:00")
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = svc.AddEvent(1, "", "周会", "", "10:00")
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestGetEvents_DateRange(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCalendarService(db)
	userSvc := newTestUserService(t, db)
	u1 := createUser(t, userSvc, "张伟", "a@x.com")

	for _, date := range []string{"2024-3-5", "2024-3-12", "2024-4-1"} {
		_, err := svc.SaveWorkHours(u1.ID, date, "09:00", "17:00")
		require.NoError(t, err)
	}

	// 范围查询按字典序比较："2024-3-12"排在"2024-3-5"之前，
	// 且"2024-3-5"大于"2024-3-31"，这是不补零日期键的既有行为
	events, err := svc.GetEvents(u1.ID, "2024-3-1", "2024-3-9")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2024-3-12", events[0].Date)
	assert.Equal(t, "2024-3-5", events[1].Date)

	all, err := svc.GetEvents(u1.ID, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteDate(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCalendarService(db)
	userSvc := newTestUserService(t, db)
	u1 := createUser(t, userSvc, "张伟", "a@x.com")

	_, err := svc.AddEvent(u1.ID, "2024-3-5", "周会", "", "10:00")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDate(u1.ID, "2024-3-5"))

	got, err := svc.GetEventByDate(u1.ID, "2024-3-5")
	require.NoError(t, err)
	assert.Empty(t, got.Events)
}
