package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"agentcraft-be/internal/model"
	"agentcraft-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeNotificationRepo struct {
	types  map[string]*model.NotificationType
	admins []model.User
	saved  []*model.Notification
}

func (r *fakeNotificationRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	r.saved = append(r.saved, n)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	var out []model.Notification
	for _, n := range r.saved {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.saved {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	for _, n := range r.saved {
		if n.ID == notificationID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	for _, n := range r.saved {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) GetNotificationTypeByCode(ctx context.Context, code string) (*model.NotificationType, error) {
	if t, ok := r.types[code]; ok {
		return t, nil
	}
	return nil, errors.New("record not found")
}

func (r *fakeNotificationRepo) GetUsersByRole(ctx context.Context, role string) ([]model.User, error) {
	if role == "admin" {
		return r.admins, nil
	}
	return nil, nil
}

type fakeDelivery struct {
	sent      map[uuid.UUID][]model.Notification
	broadcast []model.Notification
}

func newFakeDelivery() *fakeDelivery {
	return &fakeDelivery{sent: make(map[uuid.UUID][]model.Notification)}
}

func (d *fakeDelivery) Send(userID uuid.UUID, n model.Notification) {
	d.sent[userID] = append(d.sent[userID], n)
}

func (d *fakeDelivery) Broadcast(n model.Notification) {
	d.broadcast = append(d.broadcast, n)
}

func newNotificationServiceForTest(repo *fakeNotificationRepo, delivery *fakeDelivery) *NotificationService {
	return NewNotificationService(repo, nil, delivery, nopLogger{})
}

func TestHandleEventSelfTarget(t *testing.T) {
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{
			"SUBSCRIPTION_ACTIVATED": {
				Code:        "SUBSCRIPTION_ACTIVATED",
				DisplayName: "Subscription Activated",
				Template:    "Your subscription is now active. Order: {order_id}",
				TargetType:  "SELF",
				IsActive:    true,
				Channels:    datatypes.JSON([]byte(`["web"]`)),
			},
		},
	}
	delivery := newFakeDelivery()
	svc := newNotificationServiceForTest(repo, delivery)

	userId := uuid.New()
	evt := events.NewSubscriptionActivatedEvent(userId.String(), "order-123")

	require.NoError(t, svc.handleEvent(context.Background(), evt))

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	assert.Equal(t, userId, saved.UserID)
	assert.Equal(t, "Subscription Activated", saved.Title)
	assert.Equal(t, "Your subscription is now active. Order: order-123", saved.Message)
	assert.False(t, saved.IsRead)

	require.Len(t, delivery.sent[userId], 1)
}

func TestHandleEventAdminTarget(t *testing.T) {
	adminA := model.User{Id: uuid.New()}
	adminB := model.User{Id: uuid.New()}
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{
			"USER_REGISTERED": {
				Code:       "USER_REGISTERED",
				Template:   "New user registered: {email} ({user_id})",
				TargetType: "ADMIN",
				IsActive:   true,
			},
		},
		admins: []model.User{adminA, adminB},
	}
	delivery := newFakeDelivery()
	svc := newNotificationServiceForTest(repo, delivery)

	evt := events.NewUserRegisteredEvent(uuid.New().String(), "ada@example.com")

	require.NoError(t, svc.handleEvent(context.Background(), evt))

	// One inbox row per admin.
	assert.Len(t, repo.saved, 2)
	assert.Len(t, delivery.sent[adminA.Id], 1)
	assert.Len(t, delivery.sent[adminB.Id], 1)
}

func TestHandleEventBroadcastSkipsPersistence(t *testing.T) {
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{
			"SYSTEM_BROADCAST": {
				Code:       "SYSTEM_BROADCAST",
				Template:   "{message}",
				TargetType: "BROADCAST",
				IsActive:   true,
			},
		},
	}
	delivery := newFakeDelivery()
	svc := newNotificationServiceForTest(repo, delivery)

	evt := events.BaseEvent{
		Type:       "SYSTEM_BROADCAST",
		Data:       map[string]interface{}{"message": "maintenance at midnight"},
		OccurredAt: time.Now(),
	}

	require.NoError(t, svc.handleEvent(context.Background(), evt))

	assert.Empty(t, repo.saved)
	require.Len(t, delivery.broadcast, 1)
	assert.Equal(t, "maintenance at midnight", delivery.broadcast[0].Message)
}

func TestHandleEventUnregisteredType(t *testing.T) {
	repo := &fakeNotificationRepo{types: map[string]*model.NotificationType{}}
	svc := newNotificationServiceForTest(repo, newFakeDelivery())

	evt := events.BaseEvent{Type: "NOBODY_LISTENS", OccurredAt: time.Now()}

	// Unknown codes are dropped, not redelivered.
	assert.NoError(t, svc.handleEvent(context.Background(), evt))
	assert.Empty(t, repo.saved)
}

func TestHandleEventInactiveType(t *testing.T) {
	repo := &fakeNotificationRepo{
		types: map[string]*model.NotificationType{
			"USER_LOGIN": {
				Code:       "USER_LOGIN",
				Template:   "You logged in as {email}",
				TargetType: "SELF",
				IsActive:   false,
			},
		},
	}
	delivery := newFakeDelivery()
	svc := newNotificationServiceForTest(repo, delivery)

	evt := events.NewUserLoginEvent(uuid.New().String(), "ada@example.com")

	require.NoError(t, svc.handleEvent(context.Background(), evt))
	assert.Empty(t, repo.saved)
	assert.Empty(t, delivery.sent)
}

func TestBuildNotificationActionURL(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newNotificationServiceForTest(repo, newFakeDelivery())

	entityId := uuid.New()
	config := &model.NotificationType{
		Code:        "AGENT_CREATED",
		DisplayName: "Agent Created",
		Template:    "Your new AI agent is ready to chat",
	}
	evt := events.BaseEvent{
		Type: "AGENT_CREATED",
		Data: map[string]interface{}{
			"entity_type": "agent",
			"entity_id":   entityId.String(),
		},
		OccurredAt: time.Now(),
	}

	notif := svc.buildNotification(uuid.New(), config, evt)

	assert.Equal(t, "agent", notif.EntityType)
	require.NotNil(t, notif.EntityID)
	assert.Equal(t, entityId, *notif.EntityID)
	assert.Contains(t, string(notif.Metadata), "/agents/"+entityId.String())
}
