package controller

import (
	"aqua-support-be/internal/dto"
	"aqua-support-be/internal/pkg/serverutils"
	"aqua-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISupportController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type supportController struct {
	supportService service.ISupportService
	rateLimiter    fiber.Handler
}

func NewSupportController(supportService service.ISupportService, rateLimiter fiber.Handler) ISupportController {
	return &supportController{
		supportService: supportService,
		rateLimiter:    rateLimiter,
	}
}

func (c *supportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/support/v1")
	if c.rateLimiter != nil {
		h.Use(c.rateLimiter)
	}
	h.Post("ask", c.Ask)
}

// Ask is the public endpoint; customers are not authenticated.
func (c *supportController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.supportService.Ask(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer inquiry", res))
}
