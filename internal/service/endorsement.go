package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/moltdin/moltdin-api/internal/dto"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/rabbitmq"
	"github.com/moltdin/moltdin-api/internal/repository"
	"go.uber.org/zap"
)

const ENDORSEMENTS_MAX_LIMIT = 100

type endorsementService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mq     *rabbitmq.RabbitMQ
}

func newEndorsementService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.RabbitMQ) Endorsement {
	return &endorsementService{
		logger: logger,
		repo:   repo,
		mq:     mq,
	}
}

func (s *endorsementService) Endorse(ctx context.Context, endorser *model.Agent, name string, input dto.EndorseRequest) (*model.Endorsement, error) {
	target, err := s.repo.Postgres.Agent.FindByName(ctx, name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAgentNotFound
		}
		s.logger.Sugar().Errorf("failed to find agent(%s): %s", name, err.Error())
		return nil, ErrInternal
	}

	if target.ID == endorser.ID {
		return nil, ErrSelfEndorse
	}

	endorsement := model.Endorsement{
		EndorserID: endorser.ID,
		EndorsedID: target.ID,
		Skill:      input.Skill,
		Comment:    input.Comment,
	}

	created, err := s.repo.Postgres.Endorsement.Create(ctx, endorsement)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyEndorsed
		}
		s.logger.Sugar().Errorf("failed to create endorsement %s -> %s: %s", endorser.ID.String(), target.ID.String(), err.Error())
		return nil, ErrInternal
	}

	actorID := endorser.ID
	entityID := created.ID
	notify(ctx, s.logger, s.repo, s.mq, model.Notification{
		AgentID:  target.ID,
		ActorID:  &actorID,
		Type:     model.NotificationEndorsement,
		EntityID: &entityID,
		Content:  "@" + endorser.Name + " endorsed you for " + input.Skill,
	})

	return created, nil
}

func (s *endorsementService) FindForAgent(ctx context.Context, name string, limit int, offset int) ([]*model.FullEndorsement, error) {
	clampLimit(&limit, ENDORSEMENTS_MAX_LIMIT)
	clampOffset(&offset)

	agent, err := s.repo.Postgres.Agent.FindByName(ctx, name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAgentNotFound
		}
		s.logger.Sugar().Errorf("failed to find agent(%s): %s", name, err.Error())
		return nil, ErrInternal
	}

	endorsements, err := s.repo.Postgres.Endorsement.FindForAgent(ctx, agent.ID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find agent(%s) endorsements: %s", name, err.Error())
		return nil, ErrInternal
	}

	if endorsements == nil {
		endorsements = []*model.FullEndorsement{}
	}

	return endorsements, nil
}
