package controller

import (
	"ai-lessonplan-be/internal/dto"
	"ai-lessonplan-be/internal/pkg/serverutils"
	"ai-lessonplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get("latest", c.Latest)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) Latest(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Latest(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show latest session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Get(ctx.Context(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.sessionService.UpdateTitle(ctx.Context(), userId, ctx.Params("id"), req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update session", nil))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	if err := c.sessionService.Delete(ctx.Context(), userId, ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", nil))
}
