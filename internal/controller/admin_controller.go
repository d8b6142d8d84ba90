package controller

import (
	"aqua-support-be/internal/pkg/logger"
	"aqua-support-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetLogById(ctx *fiber.Ctx) error
}

type adminController struct {
	appLogger     logger.ILogger
	agentLogger   logger.ILogger
	jwtMiddleware fiber.Handler
}

func NewAdminController(appLogger logger.ILogger, agentLogger logger.ILogger, jwtMiddleware fiber.Handler) IAdminController {
	return &adminController{
		appLogger:     appLogger,
		agentLogger:   agentLogger,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(c.jwtMiddleware)
	h.Get("logs", c.GetLogs)
	h.Get("logs/:id", c.GetLogById)
}

func (c *adminController) source(ctx *fiber.Ctx) logger.ILogger {
	if ctx.Query("source") == "agent" {
		return c.agentLogger
	}
	return c.appLogger
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	logs, err := c.source(ctx).GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list logs", logs))
}

func (c *adminController) GetLogById(ctx *fiber.Ctx) error {
	entry, err := c.source(ctx).GetLogById(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Log entry not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show log", entry))
}
