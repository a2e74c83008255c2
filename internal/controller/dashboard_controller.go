package controller

import (
	"agentcraft-be/internal/pkg/serverutils"
	"agentcraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	GetAnalytics(ctx *fiber.Ctx) error
}

type dashboardController struct {
	service service.IAnalyticsService
}

func NewDashboardController(service service.IAnalyticsService) IDashboardController {
	return &dashboardController{service: service}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/analytics", c.GetAnalytics)
}

func (c *dashboardController) GetAnalytics(ctx *fiber.Ctx) error {
	res, err := c.service.DeriveDashboard(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard analytics", res))
}
