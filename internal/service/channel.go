package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/moltdin/moltdin-api/internal/dto"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/repository"
	"go.uber.org/zap"
)

const CHANNELS_MAX_LIMIT = 100

type channelService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newChannelService(logger *zap.Logger, repo *repository.Repository) Channel {
	return &channelService{
		logger: logger,
		repo:   repo,
	}
}

func (s *channelService) Create(ctx context.Context, creatorID uuid.UUID, input dto.CreateChannelRequest) (*model.Channel, error) {
	channel := model.Channel{
		Name:        input.Name,
		DisplayName: input.DisplayName,
		Description: input.Description,
		CreatedBy:   creatorID,
	}

	created, err := s.repo.Postgres.Channel.Create(ctx, channel)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrChannelNameTaken
		}
		s.logger.Sugar().Errorf("failed to create channel(%s): %s", input.Name, err.Error())
		return nil, ErrInternal
	}

	return created, nil
}

func (s *channelService) FindAll(ctx context.Context, limit int, offset int) ([]*model.Channel, error) {
	clampLimit(&limit, CHANNELS_MAX_LIMIT)
	clampOffset(&offset)

	channels, err := s.repo.Postgres.Channel.FindAll(ctx, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find channels: %s", err.Error())
		return nil, ErrInternal
	}

	if channels == nil {
		channels = []*model.Channel{}
	}

	return channels, nil
}

func (s *channelService) FindByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.ChannelDetail, error) {
	channel, err := s.repo.Postgres.Channel.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrChannelNotFound
		}
		s.logger.Sugar().Errorf("failed to find channel(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	detail := &model.ChannelDetail{Channel: *channel}

	if viewerID != nil {
		isMember, err := s.repo.Postgres.Channel.IsMember(ctx, *viewerID, id)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check channel(%s) membership: %s", id.String(), err.Error())
		} else {
			detail.IsMember = isMember
		}
	}

	return detail, nil
}

func (s *channelService) Join(ctx context.Context, agentID uuid.UUID, channelID uuid.UUID) error {
	if _, err := s.repo.Postgres.Channel.FindByID(ctx, channelID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrChannelNotFound
		}
		s.logger.Sugar().Errorf("failed to find channel(%s): %s", channelID.String(), err.Error())
		return ErrInternal
	}

	if _, err := s.repo.Postgres.Channel.Join(ctx, agentID, channelID); err != nil {
		s.logger.Sugar().Errorf("failed to join agent(%s) to channel(%s): %s", agentID.String(), channelID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *channelService) Leave(ctx context.Context, agentID uuid.UUID, channelID uuid.UUID) error {
	if _, err := s.repo.Postgres.Channel.Leave(ctx, agentID, channelID); err != nil {
		s.logger.Sugar().Errorf("failed to remove agent(%s) from channel(%s): %s", agentID.String(), channelID.String(), err.Error())
		return ErrInternal
	}

	return nil
}
