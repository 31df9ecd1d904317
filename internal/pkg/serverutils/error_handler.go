package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-lessonplan-be/internal/pkg/apperrors"
	"ai-lessonplan-be/internal/pkg/logger"
)

// NewErrorHandler maps domain errors onto HTTP statuses. An ownership
// mismatch and a missing session produce the same 404.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ErrorResponse(ctx, fiberErr.Code, fiberErr.Message)
		}

		switch {
		case errors.Is(err, apperrors.ErrSessionNotFound):
			return ErrorResponse(ctx, fiber.StatusNotFound, "session not found")
		case errors.Is(err, apperrors.ErrUnauthorized):
			return ErrorResponse(ctx, fiber.StatusUnauthorized, "unauthorized")
		case errors.Is(err, apperrors.ErrCurriculumNotFound):
			return ErrorResponse(ctx, fiber.StatusNotFound,
				"ไม่พบมาตรฐานการเรียนรู้ที่ตรงกับเรื่องนี้ กรุณาตรวจสอบชื่อเรื่องหรือกลุ่มสาระแล้วลองใหม่อีกครั้ง")
		case errors.Is(err, apperrors.ErrStageNotReady):
			return ErrorResponse(ctx, fiber.StatusBadRequest, "earlier stages must complete first")
		case errors.Is(err, apperrors.ErrMissingVariable),
			errors.Is(err, apperrors.ErrMalformedOutput),
			errors.Is(err, apperrors.ErrGenerationFailed):
			log.Error("http", "generation produced unusable output", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ErrorResponse(ctx, fiber.StatusBadGateway, "generation failed, please retry")
		default:
			log.Error("http", "unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ErrorResponse(ctx, fiber.StatusInternalServerError, "internal server error")
		}
	}
}
