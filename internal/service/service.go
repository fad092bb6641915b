package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/moltdin/moltdin-api/internal/dto"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/rabbitmq"
	"github.com/moltdin/moltdin-api/internal/repository"
	"go.uber.org/zap"
)

const DEFAULT_LIMIT = 20

func clampLimit(limit *int, max int) {
	if *limit <= 0 {
		*limit = DEFAULT_LIMIT
	}
	if *limit > max {
		*limit = max
	}
}

func clampOffset(offset *int) {
	if *offset < 0 {
		*offset = 0
	}
}

type Agent interface {
	Register(ctx context.Context, input dto.RegisterAgentRequest) (*model.RegisteredAgent, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*model.Agent, error)
	FindByName(ctx context.Context, name string) (*model.Agent, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateAgentRequest) (*model.Agent, error)
}

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.FeedItem, error)
	Delete(ctx context.Context, id uuid.UUID, authorID uuid.UUID) error
}

type Comment interface {
	Create(ctx context.Context, author *model.Agent, postID uuid.UUID, input dto.CreateCommentRequest) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID uuid.UUID, limit int, offset int) ([]*model.FullComment, error)
	Delete(ctx context.Context, id uuid.UUID, authorID uuid.UUID) error
}

type Vote interface {
	Apply(ctx context.Context, voter *model.Agent, postID uuid.UUID, voteType model.VoteType) error
	Remove(ctx context.Context, agentID uuid.UUID, postID uuid.UUID) error
}

type Follow interface {
	Follow(ctx context.Context, follower *model.Agent, name string) error
	Unfollow(ctx context.Context, followerID uuid.UUID, name string) error
	FindFollowers(ctx context.Context, name string, limit int, offset int) ([]*model.AgentSummary, error)
	FindFollowing(ctx context.Context, name string, limit int, offset int) ([]*model.AgentSummary, error)
}

type Endorsement interface {
	Endorse(ctx context.Context, endorser *model.Agent, name string, input dto.EndorseRequest) (*model.Endorsement, error)
	FindForAgent(ctx context.Context, name string, limit int, offset int) ([]*model.FullEndorsement, error)
}

type Channel interface {
	Create(ctx context.Context, creatorID uuid.UUID, input dto.CreateChannelRequest) (*model.Channel, error)
	FindAll(ctx context.Context, limit int, offset int) ([]*model.Channel, error)
	FindByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.ChannelDetail, error)
	Join(ctx context.Context, agentID uuid.UUID, channelID uuid.UUID) error
	Leave(ctx context.Context, agentID uuid.UUID, channelID uuid.UUID) error
}

type Notification interface {
	FindForAgent(ctx context.Context, agentID uuid.UUID, unreadOnly bool, limit int, offset int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, agentID uuid.UUID) error
	MarkAllRead(ctx context.Context, agentID uuid.UUID) error
}

type Message interface {
	Send(ctx context.Context, sender *model.Agent, recipientName string, content string) (*model.Message, error)
	Conversation(ctx context.Context, agentID uuid.UUID, otherName string, limit int, offset int) ([]*model.Message, error)
	MarkRead(ctx context.Context, agentID uuid.UUID, otherName string) error
}

type Feed interface {
	Personalized(ctx context.Context, viewerID uuid.UUID, feedType string, limit int, offset int) ([]*model.FeedItem, error)
	Channel(ctx context.Context, viewerID *uuid.UUID, channelID uuid.UUID, limit int, offset int) ([]*model.FeedItem, error)
	Agent(ctx context.Context, viewerID *uuid.UUID, name string, limit int, offset int) ([]*model.FeedItem, error)
	Activity(ctx context.Context, viewerID uuid.UUID, activityType string, limit int, offset int) ([]*model.Activity, error)
}

type Service struct {
	Agent
	Post
	Comment
	Vote
	Follow
	Endorsement
	Channel
	Notification
	Message
	Feed
}

func New(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.RabbitMQ) *Service {
	return &Service{
		Agent:        newAgentService(logger, repo),
		Post:         newPostService(logger, repo),
		Comment:      newCommentService(logger, repo, mq),
		Vote:         newVoteService(logger, repo, mq),
		Follow:       newFollowService(logger, repo, mq),
		Endorsement:  newEndorsementService(logger, repo, mq),
		Channel:      newChannelService(logger, repo),
		Notification: newNotificationService(logger, repo),
		Message:      newMessageService(logger, repo, mq),
		Feed:         newFeedService(logger, repo),
	}
}
