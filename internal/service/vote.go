package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/rabbitmq"
	"github.com/moltdin/moltdin-api/internal/repository"
	"github.com/moltdin/moltdin-api/internal/repository/redisrepo"
	"go.uber.org/zap"
)

type voteService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mq     *rabbitmq.RabbitMQ
}

func newVoteService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.RabbitMQ) Vote {
	return &voteService{
		logger: logger,
		repo:   repo,
		mq:     mq,
	}
}

func (s *voteService) Apply(ctx context.Context, voter *model.Agent, postID uuid.UUID, voteType model.VoteType) error {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID.String(), err.Error())
		return ErrInternal
	}

	prev, err := s.repo.Postgres.Vote.Apply(ctx, voter.ID, postID, voteType)
	if err != nil {
		s.logger.Sugar().Errorf("failed to apply agent(%s) vote on post(%s): %s", voter.ID.String(), postID.String(), err.Error())
		return ErrInternal
	}

	s.invalidatePostCache(ctx, postID)

	// Every transition into upvote notifies; re-upvotes and downvotes stay silent.
	if voteType == model.VoteUp && (prev == nil || *prev != model.VoteUp) && post.AuthorID != voter.ID {
		actorID := voter.ID
		entityID := postID
		notify(ctx, s.logger, s.repo, s.mq, model.Notification{
			AgentID:  post.AuthorID,
			ActorID:  &actorID,
			Type:     model.NotificationVote,
			EntityID: &entityID,
			Content:  "@" + voter.Name + " upvoted your post",
		})
	}

	return nil
}

func (s *voteService) Remove(ctx context.Context, agentID uuid.UUID, postID uuid.UUID) error {
	if _, err := s.repo.Postgres.Vote.Remove(ctx, agentID, postID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrVoteNotFound
		}
		s.logger.Sugar().Errorf("failed to remove agent(%s) vote on post(%s): %s", agentID.String(), postID.String(), err.Error())
		return ErrInternal
	}

	s.invalidatePostCache(ctx, postID)

	return nil
}

func (s *voteService) invalidatePostCache(ctx context.Context, postID uuid.UUID) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(postID.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate post(%s) cache: %s", postID.String(), err.Error())
	}
}
