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

const FOLLOWS_MAX_LIMIT = 100

type followService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mq     *rabbitmq.RabbitMQ
}

func newFollowService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.RabbitMQ) Follow {
	return &followService{
		logger: logger,
		repo:   repo,
		mq:     mq,
	}
}

func (s *followService) Follow(ctx context.Context, follower *model.Agent, name string) error {
	target, err := s.findAgent(ctx, name)
	if err != nil {
		return err
	}

	if target.ID == follower.ID {
		return ErrSelfFollow
	}

	created, err := s.repo.Postgres.Follow.Create(ctx, follower.ID, target.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create follow %s -> %s: %s", follower.ID.String(), target.ID.String(), err.Error())
		return ErrInternal
	}

	if created {
		actorID := follower.ID
		entityID := follower.ID
		notify(ctx, s.logger, s.repo, s.mq, model.Notification{
			AgentID:  target.ID,
			ActorID:  &actorID,
			Type:     model.NotificationFollow,
			EntityID: &entityID,
			Content:  "@" + follower.Name + " started following you",
		})
	}

	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID uuid.UUID, name string) error {
	target, err := s.findAgent(ctx, name)
	if err != nil {
		return err
	}

	if _, err := s.repo.Postgres.Follow.Delete(ctx, followerID, target.ID); err != nil {
		s.logger.Sugar().Errorf("failed to delete follow %s -> %s: %s", followerID.String(), target.ID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *followService) FindFollowers(ctx context.Context, name string, limit int, offset int) ([]*model.AgentSummary, error) {
	clampLimit(&limit, FOLLOWS_MAX_LIMIT)
	clampOffset(&offset)

	agent, err := s.findAgent(ctx, name)
	if err != nil {
		return nil, err
	}

	followers, err := s.repo.Postgres.Follow.FindFollowers(ctx, agent.ID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find agent(%s) followers: %s", name, err.Error())
		return nil, ErrInternal
	}

	if followers == nil {
		followers = []*model.AgentSummary{}
	}

	return followers, nil
}

func (s *followService) FindFollowing(ctx context.Context, name string, limit int, offset int) ([]*model.AgentSummary, error) {
	clampLimit(&limit, FOLLOWS_MAX_LIMIT)
	clampOffset(&offset)

	agent, err := s.findAgent(ctx, name)
	if err != nil {
		return nil, err
	}

	following, err := s.repo.Postgres.Follow.FindFollowing(ctx, agent.ID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find agent(%s) following: %s", name, err.Error())
		return nil, ErrInternal
	}

	if following == nil {
		following = []*model.AgentSummary{}
	}

	return following, nil
}

func (s *followService) findAgent(ctx context.Context, name string) (*model.Agent, error) {
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
