package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-lessonplan-be/internal/dto"
	"ai-lessonplan-be/pkg/events"
)

type IPublisherService interface {
	PublishStageCompleted(ctx context.Context, sessionId, userId, stage string, payload map[string]interface{}) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (ps *publisherService) PublishStageCompleted(ctx context.Context, sessionId, userId, stage string, payload map[string]interface{}) error {
	event := events.NewStageCompleted(sessionId, userId, stage, payload)

	body, err := json.Marshal(dto.StageCompletedMessage{
		SessionId:  sessionId,
		UserId:     userId,
		Stage:      stage,
		Payload:    payload,
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	return ps.pubSub.Publish(ps.topicName, msg)
}
