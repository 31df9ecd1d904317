package contract

import (
	"context"

	"ai-lessonplan-be/internal/entity"

	"github.com/google/uuid"
)

type IFinetuneRepository interface {
	Append(ctx context.Context, record *entity.FinetuneRecord) error
	// Rate attaches a rating to the latest record of the stage.
	Rate(ctx context.Context, sessionId uuid.UUID, stage string, rating int, comment string) error
	ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.FinetuneRecord, error)
}
