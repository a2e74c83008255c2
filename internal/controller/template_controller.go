package controller

import (
	"agentcraft-be/internal/pkg/serverutils"
	"agentcraft-be/pkg/agenttemplate"

	"github.com/gofiber/fiber/v2"
)

// templateController serves the static agent template catalog. The catalog
// is compiled in, so no service layer sits between it and the handler.
type ITemplateController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type templateController struct{}

func NewTemplateController() ITemplateController {
	return &templateController{}
}

func (c *templateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/template")
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
}

func (c *templateController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Agent templates", agenttemplate.All()))
}

func (c *templateController) Get(ctx *fiber.Ctx) error {
	template, ok := agenttemplate.FindByID(ctx.Params("id"))
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "template not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Agent template", template))
}
