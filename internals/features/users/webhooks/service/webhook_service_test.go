package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	"msns_backend/internals/databases/dbtest"
	eventmodel "msns_backend/internals/features/events/model"
	accountmodel "msns_backend/internals/features/users/accounts/model"
	"msns_backend/internals/features/users/webhooks/model"
)

type fakeRoles struct {
	calls map[string]constants.Role
	err   error
}

func (f *fakeRoles) AssignRole(_ context.Context, id string, role constants.Role) error {
	if f.err != nil {
		return f.err
	}
	if f.calls == nil {
		f.calls = map[string]constants.Role{}
	}
	f.calls[id] = role
	return nil
}

const created = `{"type":"user.created","data":{"id":"user_2abc","username":null,
	"email_addresses":[{"email_address":"ayesha@msns.edu.pk"}],"public_metadata":{}}}`

func localUser(t *testing.T, db *gorm.DB, clerkID string) (accountmodel.UserModel, bool) {
	t.Helper()
	var m accountmodel.UserModel
	err := db.Where("clerk_id = ?", clerkID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, false
	}
	require.NoError(t, err)
	return m, true
}

func TestUserCreatedAssignsDefaultRole(t *testing.T) {
	db := dbtest.Open(t)
	roles := &fakeRoles{}
	svc := New(db, roles, constants.RoleNone)

	replayed, err := svc.Handle(context.Background(), "msg_1", []byte(created))
	require.NoError(t, err)
	assert.False(t, replayed)

	// an invalid default falls back to teacher
	assert.Equal(t, constants.RoleTeacher, roles.calls["user_2abc"])

	u, ok := localUser(t, db, "user_2abc")
	require.True(t, ok)
	assert.Equal(t, constants.RoleTeacher, u.Role)
	assert.Equal(t, constants.DesignationTeacher, u.AccountType)
	assert.Equal(t, "ayesha@msns.edu.pk", u.Email)
	require.NotNil(t, u.Username)
	assert.Equal(t, "ayesha@msns.edu.pk", *u.Username)
}

func TestReplayIsIgnored(t *testing.T) {
	db := dbtest.Open(t)
	roles := &fakeRoles{}
	svc := New(db, roles, constants.RoleClerk)
	ctx := context.Background()

	_, err := svc.Handle(ctx, "msg_1", []byte(created))
	require.NoError(t, err)
	delete(roles.calls, "user_2abc")

	replayed, err := svc.Handle(ctx, "msg_1", []byte(created))
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Empty(t, roles.calls)

	var n int64
	require.NoError(t, db.Model(&model.WebhookDeliveryModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestAssignFailureRollsBack(t *testing.T) {
	db := dbtest.Open(t)
	svc := New(db, &fakeRoles{err: errors.New("clerk down")}, constants.RoleTeacher)

	_, err := svc.Handle(context.Background(), "msg_1", []byte(created))
	require.ErrorIs(t, err, ErrAssignRole)

	var n int64
	require.NoError(t, db.Model(&model.WebhookDeliveryModel{}).Count(&n).Error)
	assert.Zero(t, n)
	_, ok := localUser(t, db, "user_2abc")
	assert.False(t, ok)

	// the retry goes through once the provider recovers
	svc.roles = &fakeRoles{}
	replayed, err := svc.Handle(context.Background(), "msg_1", []byte(created))
	require.NoError(t, err)
	assert.False(t, replayed)
	_, ok = localUser(t, db, "user_2abc")
	assert.True(t, ok)
}

func TestUpdatedAndDeleted(t *testing.T) {
	db := dbtest.Open(t)
	svc := New(db, nil, constants.RoleTeacher)
	ctx := context.Background()

	_, err := svc.Handle(ctx, "msg_1", []byte(created))
	require.NoError(t, err)
	before, _ := localUser(t, db, "user_2abc")

	updated := `{"type":"user.updated","data":{"id":"user_2abc","username":"ayesha",
		"email_addresses":[{"email_address":"ayesha@msns.edu.pk"}],"public_metadata":{"role":"Principal"}}}`
	_, err = svc.Handle(ctx, "msg_2", []byte(updated))
	require.NoError(t, err)

	after, ok := localUser(t, db, "user_2abc")
	require.True(t, ok)
	assert.Equal(t, before.UserID, after.UserID)
	assert.Equal(t, constants.RolePrincipal, after.Role)
	assert.Equal(t, constants.DesignationPrincipal, after.AccountType)
	assert.Equal(t, "ayesha", *after.Username)

	deleted := `{"type":"user.deleted","data":{"id":"user_2abc"}}`
	_, err = svc.Handle(ctx, "msg_3", []byte(deleted))
	require.NoError(t, err)
	_, ok = localUser(t, db, "user_2abc")
	assert.False(t, ok)

	// unknown event types are recorded and otherwise ignored
	_, err = svc.Handle(ctx, "msg_4", []byte(`{"type":"session.created","data":{"id":"sess_1"}}`))
	require.NoError(t, err)
}

func TestDeletedUserKeepsTheirEvents(t *testing.T) {
	db := dbtest.Open(t)
	svc := New(db, nil, constants.RoleTeacher)
	ctx := context.Background()

	_, err := svc.Handle(ctx, "msg_1", []byte(created))
	require.NoError(t, err)
	u, _ := localUser(t, db, "user_2abc")

	ev := eventmodel.EventModel{
		Title:     "Staff meeting",
		Date:      datatypes.Date(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
		StartTime: "09:00",
		EndTime:   "10:00",
		Type:      "MEETING",
		Priority:  "MEDIUM",
		Status:    "CONFIRMED",
		Recurring: "NONE",
		CreatorID: &u.UserID,
	}
	require.NoError(t, db.Create(&ev).Error)
	require.NoError(t, db.Create(&eventmodel.EventAttendeeModel{EventID: ev.EventID, UserID: u.UserID}).Error)

	_, err = svc.Handle(ctx, "msg_2", []byte(`{"type":"user.deleted","data":{"id":"user_2abc"}}`))
	require.NoError(t, err)

	_, ok := localUser(t, db, "user_2abc")
	assert.False(t, ok)

	var kept eventmodel.EventModel
	require.NoError(t, db.Take(&kept, "event_id = ?", ev.EventID).Error)
	assert.Nil(t, kept.CreatorID)

	var n int64
	require.NoError(t, db.Model(&eventmodel.EventAttendeeModel{}).Where("user_id = ?", u.UserID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestMalformedBody(t *testing.T) {
	svc := New(dbtest.Open(t), nil, constants.RoleTeacher)
	_, err := svc.Handle(context.Background(), "msg_1", []byte("{"))
	assert.Error(t, err)
}
