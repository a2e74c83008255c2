package controller

import (
	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/pkg/serverutils"
	"agentcraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
}

type agentController struct {
	service     service.IAgentService
	chatService service.IChatService
}

func NewAgentController(agentService service.IAgentService, chatService service.IChatService) IAgentController {
	return &agentController{
		service:     agentService,
		chatService: chatService,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agent")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/chat", c.Chat)
}

func (c *agentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateAgentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Agent created", res))
}

func (c *agentController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Agents", res))
}

func (c *agentController) Get(ctx *fiber.Ctx) error {
	agentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid agent id")
	}

	res, err := c.service.Get(ctx.Context(), currentUserId(ctx), agentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Agent", res))
}

func (c *agentController) Update(ctx *fiber.Ctx) error {
	agentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid agent id")
	}

	var req dto.UpdateAgentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), currentUserId(ctx), agentId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Agent updated", res))
}

func (c *agentController) Delete(ctx *fiber.Ctx) error {
	agentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid agent id")
	}

	if err := c.service.Delete(ctx.Context(), currentUserId(ctx), agentId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Agent deleted", nil))
}

func (c *agentController) Chat(ctx *fiber.Ctx) error {
	agentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid agent id")
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendTurn(ctx.Context(), currentUserId(ctx), agentId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat reply", res))
}
