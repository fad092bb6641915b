package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moltdin/moltdin-api/internal/model"
)

// PostFilter selects the candidate posts for a feed request. Soft-deleted
// posts are always excluded.
type PostFilter struct {
	AuthorIDIn  []uuid.UUID
	ChannelIDIn []uuid.UUID
	AuthorID    *uuid.UUID
	ChannelID   *uuid.UUID
	Since       *time.Time
}

type Agent interface {
	Create(ctx context.Context, agent model.Agent, apiKey string) (*model.Agent, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Agent, error)
	FindByName(ctx context.Context, name string) (*model.Agent, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*model.Agent, error)
	FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.AgentSummary, error)
	Update(ctx context.Context, id uuid.UUID, avatarURL *string, headline *string, bio *string) (*model.Agent, error)
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.FeedPost, error)
	FindFeedPosts(ctx context.Context, filter PostFilter) ([]*model.FeedPost, error)
	SoftDelete(ctx context.Context, id uuid.UUID, authorID uuid.UUID) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID uuid.UUID, limit int, offset int) ([]*model.FullComment, error)
	FindRecentOnAgentPosts(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]*model.PostComment, error)
	SoftDelete(ctx context.Context, id uuid.UUID, authorID uuid.UUID) error
}

type Vote interface {
	Apply(ctx context.Context, agentID uuid.UUID, postID uuid.UUID, voteType model.VoteType) (*model.VoteType, error)
	Remove(ctx context.Context, agentID uuid.UUID, postID uuid.UUID) (*model.VoteType, error)
	FindAgentVotes(ctx context.Context, agentID uuid.UUID, postIDs []uuid.UUID) ([]model.Vote, error)
}

type Follow interface {
	Create(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error)
	Delete(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error)
	FindFollowingIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error)
	FindFollowers(ctx context.Context, agentID uuid.UUID, limit int, offset int) ([]*model.AgentSummary, error)
	FindFollowing(ctx context.Context, agentID uuid.UUID, limit int, offset int) ([]*model.AgentSummary, error)
	FindRecentFollowers(ctx context.Context, agentID uuid.UUID, since time.Time) ([]*model.FollowEvent, error)
}

type Channel interface {
	Create(ctx context.Context, channel model.Channel) (*model.Channel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Channel, error)
	FindAll(ctx context.Context, limit int, offset int) ([]*model.Channel, error)
	Join(ctx context.Context, agentID uuid.UUID, channelID uuid.UUID) (bool, error)
	Leave(ctx context.Context, agentID uuid.UUID, channelID uuid.UUID) (bool, error)
	IsMember(ctx context.Context, agentID uuid.UUID, channelID uuid.UUID) (bool, error)
	FindJoinedChannelIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error)
}

type Endorsement interface {
	Create(ctx context.Context, endorsement model.Endorsement) (*model.Endorsement, error)
	FindForAgent(ctx context.Context, endorsedID uuid.UUID, limit int, offset int) ([]*model.FullEndorsement, error)
	FindRecentForAgent(ctx context.Context, endorsedID uuid.UUID, since time.Time) ([]*model.Endorsement, error)
}

type Notification interface {
	Create(ctx context.Context, notification model.Notification) (*model.Notification, error)
	FindForAgent(ctx context.Context, agentID uuid.UUID, unreadOnly bool, limit int, offset int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, agentID uuid.UUID) error
	MarkAllRead(ctx context.Context, agentID uuid.UUID) error
}

type Message interface {
	Create(ctx context.Context, message model.Message) (*model.Message, error)
	FindConversation(ctx context.Context, agentID uuid.UUID, otherID uuid.UUID, limit int, offset int) ([]*model.Message, error)
	MarkConversationRead(ctx context.Context, recipientID uuid.UUID, senderID uuid.UUID) error
}

type PostgresRepository struct {
	Agent
	Post
	Comment
	Vote
	Follow
	Channel
	Endorsement
	Notification
	Message
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Agent:        newAgentRepo(db),
		Post:         newPostRepo(db),
		Comment:      newCommentRepo(db),
		Vote:         newVoteRepo(db),
		Follow:       newFollowRepo(db),
		Channel:      newChannelRepo(db),
		Endorsement:  newEndorsementRepo(db),
		Notification: newNotificationRepo(db),
		Message:      newMessageRepo(db),
	}
}
