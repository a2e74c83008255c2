package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"agentcraft-be/internal/model"
	"agentcraft-be/internal/pkg/logger"
	"agentcraft-be/internal/repository"
	"agentcraft-be/pkg/events"
	pktNats "agentcraft-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery pushes real-time updates, typically implemented by
// the WebSocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// NotificationService consumes domain events and fans them out according
// to the notification type registry.
type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := event.EventType()
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", typeCode), nil)

	config, err := s.repo.GetNotificationTypeByCode(ctx, typeCode)
	if err != nil {
		// An unregistered event type is not an error worth redelivery.
		s.logger.Warn("NotificationService", fmt.Sprintf("No notification type registered for code '%s'", typeCode), map[string]interface{}{"error": err.Error()})
		return nil
	}
	if !config.IsActive {
		return nil
	}

	if config.TargetType == "BROADCAST" {
		// Broadcasts are push-only; no per-user inbox rows are written.
		notif := s.buildNotification(uuid.Nil, config, event)
		if s.delivery != nil {
			s.delivery.Broadcast(notif)
		}
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, config, event)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", typeCode), map[string]interface{}{"error": err})
		return err // returned errors trigger redelivery
	}

	for _, userID := range recipients {
		notif := s.buildNotification(userID, config, event)

		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(userID, notif)
		}
	}

	return nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, config *model.NotificationType, event events.Event) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID

	switch config.TargetType {
	case "SELF":
		if uidStr, ok := event.Payload()["user_id"].(string); ok {
			uid, err := uuid.Parse(uidStr)
			if err == nil {
				userIDs = append(userIDs, uid)
			}
		} else {
			s.logger.Warn("NotificationService", fmt.Sprintf("TargetType SELF but no user_id in payload for event %s", event.EventType()), nil)
		}

	case "ADMIN":
		admins, err := s.repo.GetUsersByRole(ctx, "admin")
		if err != nil {
			return nil, err
		}
		for _, u := range admins {
			userIDs = append(userIDs, u.Id)
		}

	case "ROLE":
		users, err := s.repo.GetUsersByRole(ctx, config.TargetRole)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			userIDs = append(userIDs, u.Id)
		}
	}

	return userIDs, nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, config *model.NotificationType, event events.Event) model.Notification {
	// Placeholder substitution: "{key}" in the template maps to the
	// payload value under "key".
	msg := config.Template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}

	var actorID *uuid.UUID
	if actorStr, ok := payload["actor_id"].(string); ok {
		if aid, err := uuid.Parse(actorStr); err == nil {
			actorID = &aid
		}
	}

	entityType := ""
	var entityID *uuid.UUID
	if et, ok := payload["entity_type"].(string); ok {
		entityType = et
	}
	if eidStr, ok := payload["entity_id"].(string); ok {
		if eid, err := uuid.Parse(eidStr); err == nil {
			entityID = &eid
		}
	}

	metaMap := make(map[string]interface{})
	for k, v := range payload {
		metaMap[k] = v
	}
	if entityType != "" && entityID != nil {
		metaMap["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID.String())
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		ActorID:    actorID,
		TypeCode:   config.Code,
		Title:      config.DisplayName,
		Message:    msg,
		Metadata:   datatypes.JSON(metaJSON),
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
		IsRead:     false,
	}
}

// GetNotifications fetches a page of notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
