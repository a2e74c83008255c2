package controller

import (
	"agentcraft-be/internal/pkg/serverutils"
	"agentcraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type conversationController struct {
	service service.IConversationService
}

func NewConversationController(service service.IConversationService) IConversationController {
	return &conversationController{service: service}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Delete("/:id", c.Delete)
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	var agentId *uuid.UUID
	if raw := ctx.Query("agent_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid agent_id filter")
		}
		agentId = &parsed
	}

	res, err := c.service.List(ctx.Context(), currentUserId(ctx), agentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversations", res))
}

func (c *conversationController) Get(ctx *fiber.Ctx) error {
	conversationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid conversation id")
	}

	res, err := c.service.GetDetail(ctx.Context(), currentUserId(ctx), conversationId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation detail", res))
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	conversationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid conversation id")
	}

	if err := c.service.Delete(ctx.Context(), currentUserId(ctx), conversationId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation deleted", nil))
}
