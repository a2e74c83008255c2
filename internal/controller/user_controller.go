package controller

import (
	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/pkg/serverutils"
	"agentcraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	GetNotificationPreferences(ctx *fiber.Ctx) error
	UpdateNotificationPreferences(ctx *fiber.Ctx) error
	DeleteAccount(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/profile", c.GetProfile)
	h.Put("/profile", c.UpdateProfile)
	h.Put("/password", c.ChangePassword)
	h.Get("/notifications", c.GetNotificationPreferences)
	h.Put("/notifications", c.UpdateNotificationPreferences)
	h.Delete("/account", c.DeleteAccount)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.service.GetProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) ChangePassword(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.ChangePassword(ctx.Context(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Password changed", nil))
}

func (c *userController) GetNotificationPreferences(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.service.GetNotificationPreferences(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notification preferences", res))
}

func (c *userController) UpdateNotificationPreferences(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.UpdateNotificationPreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.UpdateNotificationPreferences(ctx.Context(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notification preferences updated", nil))
}

func (c *userController) DeleteAccount(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	if err := c.service.DeleteAccount(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Account deleted", nil))
}

// currentUserId reads the authenticated user set by the JWT middleware.
func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}
