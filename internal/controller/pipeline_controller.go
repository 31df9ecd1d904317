package controller

import (
	"ai-lessonplan-be/internal/dto"
	"ai-lessonplan-be/internal/pkg/serverutils"
	"ai-lessonplan-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPipelineController interface {
	RegisterRoutes(r fiber.Router)
	RunStage(ctx *fiber.Ctx) error
	FollowUp(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type pipelineController struct {
	pipelineService service.IPipelineService
}

func NewPipelineController(pipelineService service.IPipelineService) IPipelineController {
	return &pipelineController{
		pipelineService: pipelineService,
	}
}

func (c *pipelineController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lesson/v1")
	h.Get("step/health", c.Health)

	h.Use(serverutils.JwtMiddleware)
	h.Post("step/:configStep", c.RunStage)
	h.Post("follow-up", c.FollowUp)
}

func (c *pipelineController) RunStage(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	stage := ctx.Params("configStep")

	req, err := dto.ParseStageRequest(stage, ctx.Body())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.pipelineService.RunStage(ctx.Context(), userId, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run stage", res))
}

func (c *pipelineController) FollowUp(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.FollowUpRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.pipelineService.FollowUp(ctx.Context(), userId, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success follow up", res))
}

func (c *pipelineController) Health(ctx *fiber.Ctx) error {
	res := c.pipelineService.Health(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Service health", res))
}
