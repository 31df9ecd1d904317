package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"ai-lessonplan-be/internal/dto"
	"ai-lessonplan-be/internal/entity"
	"ai-lessonplan-be/internal/pkg/logger"
	"ai-lessonplan-be/internal/repository/contract"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains stage-completed events into finetune records.
// Records accumulate per stage so rated outputs can later be exported
// as a fine-tuning dataset.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	finetunes contract.IFinetuneRepository
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	finetunes contract.IFinetuneRepository,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		finetunes: finetunes,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.StageCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal stage event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	sessionId, err := uuid.Parse(payload.SessionId)
	if err != nil {
		cs.log.Error("consumer", "stage event carries invalid session id", map[string]interface{}{
			"session_id": payload.SessionId,
		})
		msg.Ack()
		return
	}
	userId, err := uuid.Parse(payload.UserId)
	if err != nil {
		msg.Ack()
		return
	}

	body, err := json.Marshal(payload.Payload)
	if err != nil {
		msg.Ack()
		return
	}

	record := &entity.FinetuneRecord{
		Id:        uuid.New(),
		SessionId: sessionId,
		UserId:    userId,
		Stage:     payload.Stage,
		Payload:   datatypes.JSON(body),
		CreatedAt: time.Now(),
	}

	if err := cs.finetunes.Append(ctx, record); err != nil {
		cs.log.Error("consumer", "failed to append finetune record", map[string]interface{}{
			"session_id": payload.SessionId,
			"stage":      payload.Stage,
			"error":      err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	cs.log.Info("consumer", "finetune record appended", map[string]interface{}{
		"session_id": payload.SessionId,
		"stage":      payload.Stage,
	})
	msg.Ack()
}
