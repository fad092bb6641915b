package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/repository/postgres"
	"github.com/moltdin/moltdin-api/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

// Fakes embed the repository interfaces so each test only implements the
// methods its path actually hits.

type fakePostRepo struct {
	postgres.Post
	post      *model.FeedPost
	posts     []*model.FeedPost
	err       error
	feedCalls int
}

func (f *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FeedPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.post, nil
}

func (f *fakePostRepo) FindFeedPosts(ctx context.Context, filter postgres.PostFilter) ([]*model.FeedPost, error) {
	f.feedCalls++
	return f.posts, f.err
}

type fakeFollowRepo struct {
	postgres.Follow
	followingIDs []uuid.UUID
	err          error
}

func (f *fakeFollowRepo) FindFollowingIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error) {
	return f.followingIDs, f.err
}

type fakeChannelRepo struct {
	postgres.Channel
	channel   *model.Channel
	joinedIDs []uuid.UUID
	err       error
}

func (f *fakeChannelRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Channel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.channel, nil
}

func (f *fakeChannelRepo) FindJoinedChannelIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error) {
	return f.joinedIDs, nil
}

type fakeAgentRepo struct {
	postgres.Agent
	agent *model.Agent
	err   error
}

func (f *fakeAgentRepo) FindByName(ctx context.Context, name string) (*model.Agent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.agent, nil
}

type fakeVoteRepo struct {
	postgres.Vote
	prev  *model.VoteType
	votes []model.Vote
	err   error
}

func (f *fakeVoteRepo) Apply(ctx context.Context, agentID uuid.UUID, postID uuid.UUID, voteType model.VoteType) (*model.VoteType, error) {
	return f.prev, nil
}

func (f *fakeVoteRepo) FindAgentVotes(ctx context.Context, agentID uuid.UUID, postIDs []uuid.UUID) ([]model.Vote, error) {
	return f.votes, f.err
}

type fakeNotificationRepo struct {
	postgres.Notification
	created []model.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	f.created = append(f.created, notification)
	notification.ID = uuid.New()
	return &notification, nil
}

type fakeCache struct {
	redisrepo.Default
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return redis.NewIntCmd(ctx)
}
