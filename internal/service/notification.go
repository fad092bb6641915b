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

const NOTIFICATIONS_MAX_LIMIT = 100

type notificationService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository) Notification {
	return &notificationService{
		logger: logger,
		repo:   repo,
	}
}

func (s *notificationService) FindForAgent(ctx context.Context, agentID uuid.UUID, unreadOnly bool, limit int, offset int) ([]*model.Notification, error) {
	clampLimit(&limit, NOTIFICATIONS_MAX_LIMIT)
	clampOffset(&offset)

	notifications, err := s.repo.Postgres.Notification.FindForAgent(ctx, agentID, unreadOnly, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find agent(%s) notifications: %s", agentID.String(), err.Error())
		return nil, ErrInternal
	}

	if notifications == nil {
		notifications = []*model.Notification{}
	}

	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID, agentID uuid.UUID) error {
	if err := s.repo.Postgres.Notification.MarkRead(ctx, id, agentID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotificationNotFound
		}
		s.logger.Sugar().Errorf("failed to mark notification(%s) read: %s", id.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, agentID uuid.UUID) error {
	if err := s.repo.Postgres.Notification.MarkAllRead(ctx, agentID); err != nil {
		s.logger.Sugar().Errorf("failed to mark agent(%s) notifications read: %s", agentID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

// notify persists a notification and publishes exactly one push event for the
// external WebSocket relay. Best-effort: failures are logged and swallowed so
// the triggering operation still succeeds, and nothing is ever retried.
func notify(ctx context.Context, logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.RabbitMQ, notification model.Notification) {
	created, err := repo.Postgres.Notification.Create(ctx, notification)
	if err != nil {
		logger.Sugar().Errorf("failed to create %s notification for agent(%s): %s", notification.Type, notification.AgentID.String(), err.Error())
		return
	}

	if mq == nil {
		return
	}

	if err := mq.PublishPush(ctx, created.AgentID); err != nil {
		logger.Sugar().Errorf("failed to publish push event for agent(%s): %s", created.AgentID.String(), err.Error())
	}
}
