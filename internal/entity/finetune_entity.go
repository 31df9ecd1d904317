package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FinetuneRecord captures one committed stage result together with any
// teacher rating, for later model fine-tuning datasets.
type FinetuneRecord struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId uuid.UUID `gorm:"type:uuid;index"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	Stage     string
	Payload   datatypes.JSON
	Rating    *int
	Comment   string
	CreatedAt time.Time
}

func (FinetuneRecord) TableName() string {
	return "finetune_records"
}
