package controller

import (
	"agentcraft-be/internal/dto"
	"agentcraft-be/internal/pkg/serverutils"
	"agentcraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Notification(ctx *fiber.Ctx) error
	GetSubscriptionStatus(ctx *fiber.Ctx) error
	CancelSubscription(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment")
	h.Get("/plans", c.GetPlans)
	// Midtrans calls this server-to-server, signature check replaces auth.
	h.Post("/notification", c.Notification)

	protected := h.Group("")
	protected.Use(serverutils.JwtMiddleware)
	protected.Post("/checkout", c.Checkout)
	protected.Get("/subscription", c.GetSubscriptionStatus)
	protected.Delete("/subscription", c.CancelSubscription)
}

func (c *paymentController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.service.GetPlans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription plans", res))
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Checkout(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) Notification(ctx *fiber.Ctx) error {
	var req dto.PaymentNotificationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}

func (c *paymentController) GetSubscriptionStatus(ctx *fiber.Ctx) error {
	res, err := c.service.GetSubscriptionStatus(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription status", res))
}

func (c *paymentController) CancelSubscription(ctx *fiber.Ctx) error {
	if err := c.service.CancelSubscription(ctx.Context(), currentUserId(ctx)); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription canceled", nil))
}
