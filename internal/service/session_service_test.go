package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"ai-lessonplan-be/internal/entity"
	"ai-lessonplan-be/internal/pkg/apperrors"
)

func seedSession(t *testing.T, repo *memSessionRepository, userId uuid.UUID, topic string, createdAt time.Time) *entity.Session {
	t.Helper()
	sess := &entity.Session{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       topic,
		ConfigStep:  0,
		Mode:        "combined",
		Subject:     "วิทยาศาสตร์",
		LessonTopic: topic,
		Level:       "ม.2",
		Objectives:  datatypes.JSON(`["อธิบายการทำงานของระบบหายใจได้"]`),
		CreatedAt:   createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), sess))
	return sess
}

func TestLatestReturnsNewestOwnedSession(t *testing.T) {
	repo := newMemSessionRepository()
	svc := NewSessionService(repo)
	userId := uuid.New()

	now := time.Now()
	seedSession(t, repo, userId, "ระบบหายใจ", now.Add(-2*time.Hour))
	newest := seedSession(t, repo, userId, "ระบบไหลเวียนเลือด", now.Add(-time.Hour))
	seedSession(t, repo, uuid.New(), "เศษส่วน", now)

	detail, err := svc.Latest(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, newest.Id.String(), detail.Id)
	assert.Equal(t, "ระบบไหลเวียนเลือด", detail.LessonTopic)
	assert.NotNil(t, detail.Objectives)
}

func TestLatestWithoutSessionsIsNotFound(t *testing.T) {
	repo := newMemSessionRepository()
	svc := NewSessionService(repo)

	_, err := svc.Latest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestGetHidesForeignSession(t *testing.T) {
	repo := newMemSessionRepository()
	svc := NewSessionService(repo)

	owner := uuid.New()
	sess := seedSession(t, repo, owner, "ระบบหายใจ", time.Now())

	_, err := svc.Get(context.Background(), uuid.New(), sess.Id.String())
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	detail, err := svc.Get(context.Background(), owner, sess.Id.String())
	require.NoError(t, err)
	assert.Equal(t, sess.Id.String(), detail.Id)
}
