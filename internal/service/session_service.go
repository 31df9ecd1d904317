package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"ai-lessonplan-be/internal/dto"
	"ai-lessonplan-be/internal/entity"
	"ai-lessonplan-be/internal/pkg/apperrors"
	"ai-lessonplan-be/internal/repository/contract"
)

type ISessionService interface {
	List(ctx context.Context, userId uuid.UUID) ([]dto.SessionSummaryResponse, error)
	Get(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.SessionDetailResponse, error)
	Latest(ctx context.Context, userId uuid.UUID) (*dto.SessionDetailResponse, error)
	UpdateTitle(ctx context.Context, userId uuid.UUID, sessionId string, req dto.UpdateSessionRequest) error
	Delete(ctx context.Context, userId uuid.UUID, sessionId string) error
}

type sessionService struct {
	sessions contract.ISessionRepository
}

func NewSessionService(sessions contract.ISessionRepository) ISessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) List(ctx context.Context, userId uuid.UUID) ([]dto.SessionSummaryResponse, error) {
	sessions, err := s.sessions.ListByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.SessionSummaryResponse, len(sessions))
	for i, sess := range sessions {
		summaries[i] = toSummary(sess)
	}
	return summaries, nil
}

func (s *sessionService) Get(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.SessionDetailResponse, error) {
	sess, err := s.findOwned(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	return toDetail(sess), nil
}

// Latest returns the caller's most recently created session.
func (s *sessionService) Latest(ctx context.Context, userId uuid.UUID) (*dto.SessionDetailResponse, error) {
	sess, err := s.sessions.FindLatestByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperrors.ErrSessionNotFound
	}
	return toDetail(sess), nil
}

func (s *sessionService) UpdateTitle(ctx context.Context, userId uuid.UUID, sessionId string, req dto.UpdateSessionRequest) error {
	sess, err := s.findOwned(ctx, userId, sessionId)
	if err != nil {
		return err
	}
	return s.sessions.UpdateFields(ctx, sess.Id, map[string]interface{}{
		"title": req.Title,
	})
}

func (s *sessionService) Delete(ctx context.Context, userId uuid.UUID, sessionId string) error {
	sess, err := s.findOwned(ctx, userId, sessionId)
	if err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sess.Id)
}

// findOwned hides ownership mismatches behind the not-found error.
func (s *sessionService) findOwned(ctx context.Context, userId uuid.UUID, sessionId string) (*entity.Session, error) {
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return nil, apperrors.ErrSessionNotFound
	}
	sess, err := s.sessions.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserId != userId {
		return nil, apperrors.ErrSessionNotFound
	}
	return sess, nil
}

func toDetail(sess *entity.Session) *dto.SessionDetailResponse {
	detail := &dto.SessionDetailResponse{
		SessionSummaryResponse: toSummary(sess),
		NumStudents:            sess.NumStudents,
		StudyPeriod:            sess.StudyPeriod,
		LearningArea:           sess.LearningArea,
		Standard:               sess.Standard,
		InterimIndicators:      sess.InterimIndicators,
		FinalIndicators:        sess.FinalIndicators,
		KeyContent:             sess.KeyContent,
	}
	detail.StudentType = rawJson(sess.StudentType)
	detail.Content = rawJson(sess.Content)
	detail.Objectives = rawJson(sess.Objectives)
	detail.KeyCompetencies = rawJson(sess.KeyCompetencies)
	detail.LessonPlan = rawJson(sess.LessonPlan)
	detail.TeachingMaterials = rawJson(sess.TeachingMaterials)
	detail.Evaluation = rawJson(sess.Evaluation)
	return detail
}

func toSummary(sess *entity.Session) dto.SessionSummaryResponse {
	return dto.SessionSummaryResponse{
		Id:          sess.Id.String(),
		Title:       sess.Title,
		Subject:     sess.Subject,
		LessonTopic: sess.LessonTopic,
		Level:       sess.Level,
		ConfigStep:  sess.ConfigStep,
		Mode:        sess.Mode,
		CreatedAt:   sess.CreatedAt,
	}
}

func rawJson(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
