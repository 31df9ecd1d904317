package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ai-lessonplan-be/internal/dto"
	"ai-lessonplan-be/internal/pkg/apperrors"
	"ai-lessonplan-be/internal/repository/contract"
)

type IFeedbackService interface {
	RateStage(ctx context.Context, userId uuid.UUID, req dto.RateStageRequest) error
	ListBySession(ctx context.Context, userId uuid.UUID, sessionId string) ([]dto.FinetuneRecordResponse, error)
}

type feedbackService struct {
	sessions  contract.ISessionRepository
	finetunes contract.IFinetuneRepository
}

func NewFeedbackService(sessions contract.ISessionRepository, finetunes contract.IFinetuneRepository) IFeedbackService {
	return &feedbackService{
		sessions:  sessions,
		finetunes: finetunes,
	}
}

func (s *feedbackService) RateStage(ctx context.Context, userId uuid.UUID, req dto.RateStageRequest) error {
	sessionId, err := s.ownedSessionId(ctx, userId, req.SessionId)
	if err != nil {
		return err
	}

	if err := s.finetunes.Rate(ctx, sessionId, req.Stage, req.Rating, req.Comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrStageNotReady
		}
		return err
	}
	return nil
}

func (s *feedbackService) ListBySession(ctx context.Context, userId uuid.UUID, sessionId string) ([]dto.FinetuneRecordResponse, error) {
	id, err := s.ownedSessionId(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	records, err := s.finetunes.ListBySession(ctx, id)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FinetuneRecordResponse, len(records))
	for i, r := range records {
		responses[i] = dto.FinetuneRecordResponse{
			Id:        r.Id.String(),
			SessionId: r.SessionId.String(),
			Stage:     r.Stage,
			Payload:   rawJson(r.Payload),
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		}
	}
	return responses, nil
}

func (s *feedbackService) ownedSessionId(ctx context.Context, userId uuid.UUID, sessionId string) (uuid.UUID, error) {
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return uuid.Nil, apperrors.ErrSessionNotFound
	}
	sess, err := s.sessions.FindById(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if sess == nil || sess.UserId != userId {
		return uuid.Nil, apperrors.ErrSessionNotFound
	}
	return id, nil
}
