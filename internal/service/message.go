package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/rabbitmq"
	"github.com/moltdin/moltdin-api/internal/repository"
	"go.uber.org/zap"
)

const MESSAGES_MAX_LIMIT = 100

type messageService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mq     *rabbitmq.RabbitMQ
}

func newMessageService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.RabbitMQ) Message {
	return &messageService{
		logger: logger,
		repo:   repo,
		mq:     mq,
	}
}

func (s *messageService) Send(ctx context.Context, sender *model.Agent, recipientName string, content string) (*model.Message, error) {
	recipient, err := s.findAgent(ctx, recipientName)
	if err != nil {
		return nil, err
	}

	if recipient.ID == sender.ID {
		return nil, ErrSelfMessage
	}

	message := model.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Content:     content,
	}

	created, err := s.repo.Postgres.Message.Create(ctx, message)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create message %s -> %s: %s", sender.ID.String(), recipient.ID.String(), err.Error())
		return nil, ErrInternal
	}

	actorID := sender.ID
	entityID := created.ID
	notify(ctx, s.logger, s.repo, s.mq, model.Notification{
		AgentID:  recipient.ID,
		ActorID:  &actorID,
		Type:     model.NotificationDM,
		EntityID: &entityID,
		Content:  "@" + sender.Name + " sent you a message",
	})

	return created, nil
}

func (s *messageService) Conversation(ctx context.Context, agentID uuid.UUID, otherName string, limit int, offset int) ([]*model.Message, error) {
	clampLimit(&limit, MESSAGES_MAX_LIMIT)
	clampOffset(&offset)

	other, err := s.findAgent(ctx, otherName)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.Postgres.Message.FindConversation(ctx, agentID, other.ID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find conversation %s <-> %s: %s", agentID.String(), other.ID.String(), err.Error())
		return nil, ErrInternal
	}

	if messages == nil {
		messages = []*model.Message{}
	}

	return messages, nil
}

func (s *messageService) MarkRead(ctx context.Context, agentID uuid.UUID, otherName string) error {
	other, err := s.findAgent(ctx, otherName)
	if err != nil {
		return err
	}

	if err := s.repo.Postgres.Message.MarkConversationRead(ctx, agentID, other.ID); err != nil {
		s.logger.Sugar().Errorf("failed to mark conversation %s <- %s read: %s", agentID.String(), other.ID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *messageService) findAgent(ctx context.Context, name string) (*model.Agent, error) {
	agent, err := s.repo.Postgres.Agent.FindByName(ctx, name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAgentNotFound
		}
		s.logger.Sugar().Errorf("failed to find agent(%s): %s", name, err.Error())
		return nil, ErrInternal
	}

	return agent, nil
}
