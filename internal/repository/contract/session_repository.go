package contract

import (
	"context"

	"ai-lessonplan-be/internal/entity"

	"github.com/google/uuid"
)

type ISessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// FindById returns (nil, nil) when no session exists.
	FindById(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	FindLatestByUser(ctx context.Context, userId uuid.UUID) (*entity.Session, error)
	ListByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Session, error)
	// UpdateFields writes only the given columns.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}
