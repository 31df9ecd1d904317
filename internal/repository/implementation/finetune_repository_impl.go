package implementation

import (
	"context"

	"ai-lessonplan-be/internal/entity"
	"ai-lessonplan-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FinetuneRepositoryImpl struct {
	db *gorm.DB
}

func NewFinetuneRepository(db *gorm.DB) contract.IFinetuneRepository {
	return &FinetuneRepositoryImpl{db: db}
}

func (r *FinetuneRepositoryImpl) Append(ctx context.Context, record *entity.FinetuneRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *FinetuneRepositoryImpl) Rate(ctx context.Context, sessionId uuid.UUID, stage string, rating int, comment string) error {
	var record entity.FinetuneRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND stage = ?", sessionId, stage).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&entity.FinetuneRecord{}).
		Where("id = ?", record.Id).
		Updates(map[string]interface{}{
			"rating":  rating,
			"comment": comment,
		}).Error
}

func (r *FinetuneRepositoryImpl) ListBySession(ctx context.Context, sessionId uuid.UUID) ([]*entity.FinetuneRecord, error) {
	var records []*entity.FinetuneRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
