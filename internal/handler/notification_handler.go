package handler

import (
	"os"
	"time"

	"agentcraft-be/internal/pkg/logger"
	"agentcraft-be/internal/pkg/serverutils"
	"agentcraft-be/internal/service"
	internalWS "agentcraft-be/internal/websocket"
	"agentcraft-be/pkg/events"
	pktNats "agentcraft-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service   *service.NotificationService
	publisher *pktNats.Publisher
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewNotificationHandler(service *service.NotificationService, pub *pktNats.Publisher, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service:   service,
		publisher: pub,
		hub:       hub,
		logger:    log,
	}
}

// ServeWs upgrades the request to a websocket after validating the JWT.
// Browsers cannot set headers on websocket handshakes, so the token may
// arrive as a query parameter instead.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing token"))
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token claims"))
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Token missing user_id"))
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid user id in token"))
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NotificationHandler", "WebSocket session started", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID, err := h.currentUser(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	notifications, total, err := h.service.GetNotifications(c.UserContext(), userID, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Notifications", fiber.Map{
		"notifications": notifications,
		"total":         total,
		"limit":         limit,
		"offset":        offset,
	}))
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := h.currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.service.GetUnreadCount(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Unread count", fiber.Map{"count": count}))
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification id")
	}

	if err := h.service.MarkAsRead(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse[any]("Notification marked as read", nil))
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := h.currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkAllAsRead(c.UserContext(), userID); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse[any]("All notifications marked as read", nil))
}

// Broadcast queues a system-wide notification event.
func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	type Request struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if req.Title == "" || req.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title and message are required")
	}

	if role, _ := c.Locals("role").(string); role != "admin" {
		return fiber.NewError(fiber.StatusForbidden, "admin role required")
	}

	evt := events.BaseEvent{
		Type: "SYSTEM_BROADCAST",
		Data: map[string]interface{}{
			"title":   req.Title,
			"message": req.Message,
		},
		OccurredAt: time.Now(),
	}

	if h.publisher == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "event publisher not configured")
	}
	if err := h.publisher.Publish(c.UserContext(), evt); err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse[any]("Broadcast queued", nil))
}

func (h *NotificationHandler) currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return userID, nil
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notification")
	notif.Use(serverutils.JwtMiddleware)
	notif.Get("/", h.GetNotifications)
	notif.Get("/unread-count", h.GetUnreadCount)
	notif.Patch("/:id/read", h.MarkAsRead)
	notif.Patch("/read-all", h.MarkAllAsRead)
	notif.Post("/broadcast", h.Broadcast)

	// The websocket endpoint authenticates inside the handler.
	router.Get("/ws", h.ServeWs)
}
