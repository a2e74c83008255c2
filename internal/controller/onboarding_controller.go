package controller

import (
	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/pkg/serverutils"
	"agentcraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOnboardingController interface {
	RegisterRoutes(r fiber.Router)
	GetProgress(ctx *fiber.Ctx) error
	UpdateProgress(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
}

type onboardingController struct {
	service service.IOnboardingService
}

func NewOnboardingController(service service.IOnboardingService) IOnboardingController {
	return &onboardingController{service: service}
}

func (c *onboardingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/onboarding")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/progress", c.GetProgress)
	h.Put("/progress", c.UpdateProgress)
	h.Post("/complete", c.Complete)
}

func (c *onboardingController) GetProgress(ctx *fiber.Ctx) error {
	res, err := c.service.GetProgress(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Onboarding progress", res))
}

func (c *onboardingController) UpdateProgress(ctx *fiber.Ctx) error {
	var req dto.UpdateOnboardingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProgress(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Onboarding progress saved", res))
}

func (c *onboardingController) Complete(ctx *fiber.Ctx) error {
	var req dto.CompleteOnboardingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Complete(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Onboarding completed", res))
}
