package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"worknet/models"
	"worknet/services"
)

type invitationFixture struct {
	db       *gorm.DB
	svc      *services.InvitationService
	calendar *services.CalendarService
	sender   *models.User
	receiver *models.User
	entryID  string
}

// setupInvitation 发送者先在自己的日历上创建日程
func setupInvitation(t *testing.T) *invitationFixture {
	t.Helper()
	db := newTestDB(t)
	userSvc := newTestUserService(t, db)
	calendar := services.NewCalendarService(db)
	svc := services.NewInvitationService(db, userSvc, calendar)

	sender := createUser(t, userSvc, "张伟", "a@x.com")
	receiver := createUser(t, userSvc, "李娜", "b@x.com")

	created, err := calendar.AddEvent(sender.ID, "2024-3-5", "项目启动会", "新项目kickoff", "10:00")
	require.NoError(t, err)

	return &invitationFixture{
		db:       db,
		svc:      svc,
		calendar: calendar,
		sender:   sender,
		receiver: receiver,
		entryID:  created.Events[0].ID,
	}
}

func (f *invitationFixture) send(t *testing.T) *models.CalendarInvitation {
	t.Helper()
	invitation, err := f.svc.SendInvitation(f.sender.ID, f.receiver.ID,
		f.entryID, "2024-3-5", "项目启动会", "新项目kickoff", "10:00")
	require.NoError(t, err)
	return invitation
}

func TestSendInvitation(t *testing.T) {
	f := setupInvitation(t)

	invitation := f.send(t)
	assert.Equal(t, models.InvitationPending, invitation.Status)
	// 发送者姓名是发送时的快照
	assert.Equal(t, "张伟", invitation.SenderName)

	// 待处理状态下重复发送被拒绝
	_, err := f.svc.SendInvitation(f.sender.ID, f.receiver.ID,
		f.entryID, "2024-3-5", "项目启动会", "新项目kickoff", "10:00")
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestGetPendingInvitations(t *testing.T) {
	f := setupInvitation(t)
	f.send(t)

	invitations, err := f.svc.GetPendingInvitations(f.receiver.ID)
	require.NoError(t, err)
	require.Len(t, invitations, 1)
	assert.Equal(t, "项目启动会", invitations[0].EventName)

	// 发送者自己没有待处理邀请
	invitations, err = f.svc.GetPendingInvitations(f.sender.ID)
	require.NoError(t, err)
	assert.Empty(t, invitations)
}

func TestAcceptInvitation(t *testing.T) {
	f := setupInvitation(t)
	invitation := f.send(t)

	accepted, recipientEvent, err := f.svc.AcceptInvitation(invitation.ID, f.receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationAccepted, accepted.Status)

	// 接收者日历新增日程副本，双方均为已接受
	require.Len(t, recipientEvent.Events, 1)
	copied := recipientEvent.Events[0]
	assert.Equal(t, "项目启动会", copied.Name)
	assert.Equal(t, f.sender.ID, copied.CreatedBy)
	require.Len(t, copied.Attendees, 2)
	assert.Equal(t, f.sender.ID, copied.Attendees[0].UserID)
	assert.Equal(t, models.AttendeeAccepted, copied.Attendees[0].Status)
	assert.Equal(t, f.receiver.ID, copied.Attendees[1].UserID)
	assert.Equal(t, models.AttendeeAccepted, copied.Attendees[1].Status)

	// 发送者的原日程追加了接收者
	attendees, err := f.calendar.GetEventAttendees(f.sender.ID, "2024-3-5", f.entryID)
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	assert.Equal(t, f.receiver.ID, attendees[0].UserID)
	assert.Equal(t, "李娜", attendees[0].Name)
}

func TestAcceptInvitation_RecipientOnlyAndTerminal(t *testing.T) {
	f := setupInvitation(t)
	invitation := f.send(t)

	// 只有接收者可以处理
	_, _, err := f.svc.AcceptInvitation(invitation.ID, f.sender.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, _, err = f.svc.AcceptInvitation(invitation.ID, f.receiver.ID)
	require.NoError(t, err)

	// 已处理的邀请不能再次处理
	_, _, err = f.svc.AcceptInvitation(invitation.ID, f.receiver.ID)
	assert.ErrorIs(t, err, services.ErrConflict)
	_, err = f.svc.DeclineInvitation(invitation.ID, f.receiver.ID)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestAcceptInvitation_MissingSenderEventRollsBack(t *testing.T) {
	f := setupInvitation(t)
	invitation := f.send(t)

	// 发送者的日历记录被删掉后，接受操作整体失败
	require.NoError(t, f.calendar.DeleteDate(f.sender.ID, "2024-3-5"))

	_, _, err := f.svc.AcceptInvitation(invitation.ID, f.receiver.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// 事务回滚：邀请仍为待处理，接收者日历没有新增日程
	pending, err := f.svc.GetPendingInvitations(f.receiver.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	got, err := f.calendar.GetEventByDate(f.receiver.ID, "2024-3-5")
	require.NoError(t, err)
	assert.Empty(t, got.Events)
}

func TestDeclineInvitation(t *testing.T) {
	f := setupInvitation(t)
	invitation := f.send(t)

	declined, err := f.svc.DeclineInvitation(invitation.ID, f.receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationDeclined, declined.Status)

	// 拒绝后双方日历都不变
	got, err := f.calendar.GetEventByDate(f.receiver.ID, "2024-3-5")
	require.NoError(t, err)
	assert.Empty(t, got.Events)

	attendees, err := f.calendar.GetEventAttendees(f.sender.ID, "2024-3-5", f.entryID)
	require.NoError(t, err)
	assert.Empty(t, attendees)

	// 拒绝后可以重新发送邀请
	_, err = f.svc.SendInvitation(f.sender.ID, f.receiver.ID,
		f.entryID, "2024-3-5", "项目启动会", "新项目kickoff", "10:00")
	assert.NoError(t, err)
}
