package service

import (
	"context"
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

const postCacheTTL = time.Minute

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo:   repo,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error) {
	if input.ChannelID != nil {
		if _, err := s.repo.Postgres.Channel.FindByID(ctx, *input.ChannelID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrChannelNotFound
			}
			s.logger.Sugar().Errorf("failed to find channel(%s): %s", input.ChannelID.String(), err.Error())
			return nil, ErrInternal
		}

		isMember, err := s.repo.Postgres.Channel.IsMember(ctx, authorID, *input.ChannelID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check channel(%s) membership: %s", input.ChannelID.String(), err.Error())
			return nil, ErrInternal
		}
		if !isMember {
			return nil, ErrNotChannelMember
		}
	}

	post := model.Post{
		AuthorID:  authorID,
		ChannelID: input.ChannelID,
		Title:     input.Title,
		Content:   input.Content,
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create agent(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return createdPost, nil
}

func (s *postService) FindByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.FeedItem, error) {
	post, err := s.findCached(ctx, id)
	if err != nil {
		return nil, err
	}

	item := &model.FeedItem{FeedPost: *post}

	if viewerID != nil {
		votes, err := s.repo.Postgres.Vote.FindAgentVotes(ctx, *viewerID, []uuid.UUID{post.ID})
		if err != nil {
			s.logger.Sugar().Errorf("failed to find agent(%s) vote for post(%s): %s", viewerID.String(), id.String(), err.Error())
		} else {
			applyVotes([]*model.FeedItem{item}, votes)
		}
	}

	return item, nil
}

func (s *postService) findCached(ctx context.Context, id uuid.UUID) (*model.FeedPost, error) {
	cachedPost, err := redisrepo.Get[model.FeedPost](s.repo.Redis.Default, ctx, redisrepo.PostKey(id.String()))
	if err == nil && cachedPost != nil {
		return cachedPost, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%s) from redis: %s", id.String(), err.Error())
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id.String()), post, postCacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%s) in redis: %s", id.String(), err.Error())
	}

	return post, nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID, authorID uuid.UUID) error {
	if err := s.repo.Postgres.Post.SoftDelete(ctx, id, authorID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to delete post(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(id.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate post(%s) cache: %s", id.String(), err.Error())
	}

	return nil
}
