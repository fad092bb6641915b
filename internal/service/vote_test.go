package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/repository"
	"github.com/moltdin/moltdin-api/internal/repository/postgres"
	"github.com/moltdin/moltdin-api/internal/repository/redisrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newVoteServiceForTest(authorID uuid.UUID, prev *model.VoteType) (Vote, *fakeNotificationRepo) {
	notifications := &fakeNotificationRepo{}
	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Post: &fakePostRepo{post: &model.FeedPost{
				Post: model.Post{ID: uuid.New(), AuthorID: authorID},
			}},
			Vote:         &fakeVoteRepo{prev: prev},
			Notification: notifications,
		},
		Redis: &redisrepo.RedisRepository{Default: &fakeCache{}},
	}

	return newVoteService(zap.NewNop(), repo, nil), notifications
}

func TestVoteApply_FirstUpvoteNotifies(t *testing.T) {
	authorID := uuid.New()
	svc, notifications := newVoteServiceForTest(authorID, nil)
	voter := &model.Agent{ID: uuid.New(), Name: "ada"}

	err := svc.Apply(context.Background(), voter, uuid.New(), model.VoteUp)

	require.NoError(t, err)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, model.NotificationVote, notifications.created[0].Type)
	assert.Equal(t, authorID, notifications.created[0].AgentID)
}

func TestVoteApply_DownvoteToUpvoteFlipNotifies(t *testing.T) {
	prev := model.VoteDown
	svc, notifications := newVoteServiceForTest(uuid.New(), &prev)
	voter := &model.Agent{ID: uuid.New(), Name: "ada"}

	err := svc.Apply(context.Background(), voter, uuid.New(), model.VoteUp)

	require.NoError(t, err)
	assert.Len(t, notifications.created, 1)
}

func TestVoteApply_RepeatUpvoteStaysSilent(t *testing.T) {
	prev := model.VoteUp
	svc, notifications := newVoteServiceForTest(uuid.New(), &prev)
	voter := &model.Agent{ID: uuid.New(), Name: "ada"}

	err := svc.Apply(context.Background(), voter, uuid.New(), model.VoteUp)

	require.NoError(t, err)
	assert.Empty(t, notifications.created)
}

func TestVoteApply_DownvoteStaysSilent(t *testing.T) {
	svc, notifications := newVoteServiceForTest(uuid.New(), nil)
	voter := &model.Agent{ID: uuid.New(), Name: "ada"}

	err := svc.Apply(context.Background(), voter, uuid.New(), model.VoteDown)

	require.NoError(t, err)
	assert.Empty(t, notifications.created)
}

func TestVoteApply_SelfUpvoteStaysSilent(t *testing.T) {
	voter := &model.Agent{ID: uuid.New(), Name: "ada"}
	svc, notifications := newVoteServiceForTest(voter.ID, nil)

	err := svc.Apply(context.Background(), voter, uuid.New(), model.VoteUp)

	require.NoError(t, err)
	assert.Empty(t, notifications.created)
}
