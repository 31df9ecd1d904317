package controller

import (
	"ai-lessonplan-be/internal/dto"
	"ai-lessonplan-be/internal/pkg/serverutils"
	"ai-lessonplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	RateStage(ctx *fiber.Ctx) error
	ListBySession(ctx *fiber.Ctx) error
}

type feedbackController struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackController(feedbackService service.IFeedbackService) IFeedbackController {
	return &feedbackController{
		feedbackService: feedbackService,
	}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feedback/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("rate", c.RateStage)
	h.Get("session/:id", c.ListBySession)
}

func (c *feedbackController) RateStage(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.RateStageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := c.feedbackService.RateStage(ctx.Context(), userId, req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rate stage", nil))
}

func (c *feedbackController) ListBySession(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.feedbackService.ListBySession(ctx.Context(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list stage feedback", res))
}
