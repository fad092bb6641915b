package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/moltdin/moltdin-api/internal/dto"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/repository"
	"github.com/moltdin/moltdin-api/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const agentCacheTTL = time.Minute * 5

type agentService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newAgentService(logger *zap.Logger, repo *repository.Repository) Agent {
	return &agentService{
		logger: logger,
		repo:   repo,
	}
}

func (s *agentService) Register(ctx context.Context, input dto.RegisterAgentRequest) (*model.RegisteredAgent, error) {
	apiKey, err := generateAPIKey()
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate api key: %s", err.Error())
		return nil, ErrInternal
	}

	agent := model.Agent{
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
		Headline:  input.Headline,
		Bio:       input.Bio,
	}

	created, err := s.repo.Postgres.Agent.Create(ctx, agent, apiKey)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		s.logger.Sugar().Errorf("failed to create agent(%s): %s", input.Name, err.Error())
		return nil, ErrInternal
	}

	return &model.RegisteredAgent{
		Agent:  *created,
		APIKey: apiKey,
	}, nil
}

func generateAPIKey() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return "moltdin_" + hex.EncodeToString(raw), nil
}

func (s *agentService) FindByAPIKey(ctx context.Context, apiKey string) (*model.Agent, error) {
	cachedAgent, err := redisrepo.Get[model.Agent](s.repo.Redis.Default, ctx, redisrepo.AuthKeyKey(apiKey))
	if err == nil && cachedAgent != nil {
		return cachedAgent, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get agent by api key from redis: %s", err.Error())
	}

	agent, err := s.repo.Postgres.Agent.FindByAPIKey(ctx, apiKey)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAgentNotFound
		}
		s.logger.Sugar().Errorf("failed to find agent by api key from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.AuthKeyKey(apiKey), agent, agentCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to cache agent(%s): %s", agent.ID.String(), err.Error())
	}

	return agent, nil
}

func (s *agentService) FindByName(ctx context.Context, name string) (*model.Agent, error) {
	agent, err := s.repo.Postgres.Agent.FindByName(ctx, name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAgentNotFound
		}
		s.logger.Sugar().Errorf("failed to find agent(%s) from postgres: %s", name, err.Error())
		return nil, ErrInternal
	}

	return agent, nil
}

func (s *agentService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateAgentRequest) (*model.Agent, error) {
	agent, err := s.repo.Postgres.Agent.Update(ctx, id, input.AvatarURL, input.Headline, input.Bio)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAgentNotFound
		}
		s.logger.Sugar().Errorf("failed to update agent(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return agent, nil
}
