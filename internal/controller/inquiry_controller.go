package controller

import (
	"aqua-support-be/internal/dto"
	"aqua-support-be/internal/pkg/serverutils"
	"aqua-support-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInquiryController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type inquiryController struct {
	inquiryService service.IInquiryService
	jwtMiddleware  fiber.Handler
}

func NewInquiryController(inquiryService service.IInquiryService, jwtMiddleware fiber.Handler) IInquiryController {
	return &inquiryController{
		inquiryService: inquiryService,
		jwtMiddleware:  jwtMiddleware,
	}
}

func (c *inquiryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/inquiry/v1")
	h.Use(c.jwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Show)
}

func (c *inquiryController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid inquiry id")
	}

	res, err := c.inquiryService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Inquiry not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show inquiry", res))
}

func (c *inquiryController) List(ctx *fiber.Ctx) error {
	req := dto.ListInquiriesRequest{
		Intent:    ctx.Query("intent"),
		Escalated: ctx.QueryBool("escalated", false),
		Page:      ctx.QueryInt("page", 1),
		PerPage:   ctx.QueryInt("per_page", 20),
	}

	res, err := c.inquiryService.List(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list inquiries", res))
}
