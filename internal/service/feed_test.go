package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/repository"
	"github.com/moltdin/moltdin-api/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testFeedPost(author string, channel *model.ChannelSummary, score int64, createdAt time.Time) *model.FeedPost {
	authorID := uuid.New()
	post := &model.FeedPost{
		Post: model.Post{
			ID:        uuid.New(),
			AuthorID:  authorID,
			Score:     score,
			Content:   "hello from " + author,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Author: model.AgentSummary{
			ID:   authorID.String(),
			Name: author,
		},
		Channel: channel,
	}
	if channel != nil {
		channelID := channel.ID
		post.ChannelID = &channelID
	}

	return post
}

func TestHotScore_Idempotent(t *testing.T) {
	now := time.Now()
	createdAt := now.Add(-3 * time.Hour)

	first := hotScore(42, createdAt, now)
	second := hotScore(42, createdAt, now)

	assert.Equal(t, first, second)
}

func TestHotScore_RecentPostWinsOnEqualScore(t *testing.T) {
	now := time.Now()

	newer := hotScore(10, now.Add(-1*time.Hour), now)
	older := hotScore(10, now.Add(-30*time.Hour), now)

	assert.Greater(t, newer, older)
}

func TestHotScore_NegativeScoreRanksNegative(t *testing.T) {
	now := time.Now()

	score := hotScore(-5, now.Add(-1*time.Hour), now)
	assert.Negative(t, score)

	// decay shrinks the magnitude of a negative score over time
	decayed := hotScore(-5, now.Add(-100*time.Hour), now)
	assert.Greater(t, decayed, score)
}

func TestHotScore_ClockSkewDoesNotBlowUp(t *testing.T) {
	now := time.Now()

	// created_at in the future is treated as age zero
	skewed := hotScore(8, now.Add(5*time.Minute), now)
	fresh := hotScore(8, now, now)

	assert.Equal(t, fresh, skewed)
	assert.InDelta(t, 8/(2.828427), skewed, 0.001)
}

func TestMergeCandidates_ReasonTags(t *testing.T) {
	now := time.Now()
	channel := &model.ChannelSummary{ID: uuid.New(), Name: "golang", DisplayName: "Go"}

	fromFollowed := []*model.FeedPost{testFeedPost("ada", nil, 3, now)}
	fromChannels := []*model.FeedPost{testFeedPost("bob", channel, 1, now)}

	items := mergeCandidates(fromFollowed, fromChannels)

	require.Len(t, items, 2)
	assert.Equal(t, "From @ada", items[0].Reason)
	assert.Equal(t, "In #golang", items[1].Reason)
}

func TestMergeCandidates_DeduplicatesAndPrefersAuthorReason(t *testing.T) {
	now := time.Now()
	channel := &model.ChannelSummary{ID: uuid.New(), Name: "agents", DisplayName: "Agents"}

	// same post qualifies under both sources
	shared := testFeedPost("ada", channel, 7, now)

	items := mergeCandidates([]*model.FeedPost{shared}, []*model.FeedPost{shared})

	require.Len(t, items, 1)
	assert.Equal(t, "From @ada", items[0].Reason)
}

func TestMergeCandidates_ChannelSourceWithoutChannelKeepsReason(t *testing.T) {
	now := time.Now()

	orphan := testFeedPost("ada", nil, 1, now)

	items := mergeCandidates(nil, []*model.FeedPost{orphan})

	require.Len(t, items, 1)
	assert.Equal(t, "From @ada", items[0].Reason)
}

func TestMergeCandidates_KeepsInsertionOrder(t *testing.T) {
	now := time.Now()
	channel := &model.ChannelSummary{ID: uuid.New(), Name: "news", DisplayName: "News"}

	a := testFeedPost("ada", nil, 0, now)
	b := testFeedPost("bob", nil, 0, now)
	c := testFeedPost("cleo", channel, 0, now)

	items := mergeCandidates([]*model.FeedPost{a, b}, []*model.FeedPost{c})

	require.Len(t, items, 3)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, b.ID, items[1].ID)
	assert.Equal(t, c.ID, items[2].ID)
}

func TestApplyVotes_AnnotatesOnlyMatchingPosts(t *testing.T) {
	now := time.Now()
	voted := testFeedPost("ada", nil, 2, now)
	unvoted := testFeedPost("bob", nil, 2, now)

	items := mergeCandidates([]*model.FeedPost{voted, unvoted}, nil)

	applyVotes(items, []model.Vote{
		{AgentID: uuid.New(), PostID: voted.ID, VoteType: model.VoteUp},
	})

	require.NotNil(t, items[0].HasVoted)
	assert.Equal(t, model.VoteUp, *items[0].HasVoted)
	assert.Nil(t, items[1].HasVoted)

	// annotation must not touch scores
	assert.Equal(t, int64(2), items[0].Score)
	assert.Equal(t, int64(2), items[1].Score)
}

func TestApplyVotes_NoVotesLeavesEverythingNil(t *testing.T) {
	now := time.Now()
	items := mergeCandidates([]*model.FeedPost{testFeedPost("ada", nil, 1, now)}, nil)

	applyVotes(items, nil)

	assert.Nil(t, items[0].HasVoted)
}

func TestRankHot_OrdersByDecayedScore(t *testing.T) {
	now := time.Now()

	old := testFeedPost("ada", nil, 10, now.Add(-30*time.Hour))
	recent := testFeedPost("bob", nil, 10, now.Add(-1*time.Hour))

	items := mergeCandidates([]*model.FeedPost{old, recent}, nil)
	rankHot(items, now)

	assert.Equal(t, recent.ID, items[0].ID)
	assert.Equal(t, old.ID, items[1].ID)
}

func TestRankHot_StableOnTies(t *testing.T) {
	now := time.Now()
	createdAt := now.Add(-2 * time.Hour)

	// bulk-seeded data: identical scores and timestamps
	a := testFeedPost("ada", nil, 5, createdAt)
	b := testFeedPost("bob", nil, 5, createdAt)
	c := testFeedPost("cleo", nil, 5, createdAt)

	items := mergeCandidates([]*model.FeedPost{a, b, c}, nil)
	rankHot(items, now)

	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, b.ID, items[1].ID)
	assert.Equal(t, c.ID, items[2].ID)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, paginate(items, 2, 0))
	assert.Equal(t, []int{3, 4}, paginate(items, 2, 2))
	assert.Equal(t, []int{5}, paginate(items, 2, 4))
	assert.Empty(t, paginate(items, 2, 10))
	assert.Equal(t, items, paginate(items, 100, 0))
	assert.Empty(t, paginate([]int{}, 10, 0))
}

func TestClampLimit(t *testing.T) {
	limit := 10000
	clampLimit(&limit, PERSONAL_FEED_MAX_LIMIT)
	assert.Equal(t, PERSONAL_FEED_MAX_LIMIT, limit)

	limit = 10000
	clampLimit(&limit, SCOPED_FEED_MAX_LIMIT)
	assert.Equal(t, SCOPED_FEED_MAX_LIMIT, limit)

	limit = 0
	clampLimit(&limit, PERSONAL_FEED_MAX_LIMIT)
	assert.Equal(t, DEFAULT_LIMIT, limit)

	limit = 30
	clampLimit(&limit, PERSONAL_FEED_MAX_LIMIT)
	assert.Equal(t, 30, limit)
}

func newFeedServiceForTest(posts *fakePostRepo, follows *fakeFollowRepo, channels *fakeChannelRepo, agents *fakeAgentRepo, votes *fakeVoteRepo) Feed {
	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Post:    posts,
			Follow:  follows,
			Channel: channels,
			Agent:   agents,
			Vote:    votes,
		},
	}

	return newFeedService(zap.NewNop(), repo)
}

func TestPersonalized_EmptyFollowsAndChannels(t *testing.T) {
	posts := &fakePostRepo{}
	svc := newFeedServiceForTest(
		posts,
		&fakeFollowRepo{},
		&fakeChannelRepo{},
		&fakeAgentRepo{},
		&fakeVoteRepo{},
	)

	items, err := svc.Personalized(context.Background(), uuid.New(), FeedTypeAll, 20, 0)

	require.NoError(t, err)
	require.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, posts.feedCalls)
}

func TestPersonalized_EmptyFollowingFeed(t *testing.T) {
	posts := &fakePostRepo{}
	svc := newFeedServiceForTest(
		posts,
		&fakeFollowRepo{},
		&fakeChannelRepo{},
		&fakeAgentRepo{},
		&fakeVoteRepo{},
	)

	items, err := svc.Personalized(context.Background(), uuid.New(), FeedTypeFollowing, 20, 0)

	require.NoError(t, err)
	require.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, posts.feedCalls)
}

func TestPersonalized_VoteLookupFailureDegrades(t *testing.T) {
	now := time.Now()
	followedID := uuid.New()
	posts := &fakePostRepo{posts: []*model.FeedPost{
		testFeedPost("ada", nil, 3, now),
		testFeedPost("bob", nil, 1, now),
	}}
	svc := newFeedServiceForTest(
		posts,
		&fakeFollowRepo{followingIDs: []uuid.UUID{followedID}},
		&fakeChannelRepo{},
		&fakeAgentRepo{},
		&fakeVoteRepo{err: errors.New("connection reset")},
	)

	items, err := svc.Personalized(context.Background(), uuid.New(), FeedTypeFollowing, 20, 0)

	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Nil(t, item.HasVoted)
	}
}

func TestChannelFeed_UnknownChannel(t *testing.T) {
	svc := newFeedServiceForTest(
		&fakePostRepo{},
		&fakeFollowRepo{},
		&fakeChannelRepo{err: pgx.ErrNoRows},
		&fakeAgentRepo{},
		&fakeVoteRepo{},
	)

	_, err := svc.Channel(context.Background(), nil, uuid.New(), 20, 0)

	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestAgentFeed_UnknownAgent(t *testing.T) {
	svc := newFeedServiceForTest(
		&fakePostRepo{},
		&fakeFollowRepo{},
		&fakeChannelRepo{},
		&fakeAgentRepo{err: pgx.ErrNoRows},
		&fakeVoteRepo{},
	)

	_, err := svc.Agent(context.Background(), nil, "ghost", 20, 0)

	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestRankAndPaginate_PageMatchesFullRanking(t *testing.T) {
	now := time.Now()

	var posts []*model.FeedPost
	for i := 0; i < 10; i++ {
		posts = append(posts, testFeedPost("agent", nil, int64(i), now.Add(-time.Duration(i)*time.Hour)))
	}

	items := mergeCandidates(posts, nil)
	rankHot(items, now)

	page := paginate(items, 3, 4)

	require.Len(t, page, 3)
	assert.Equal(t, items[4].ID, page[0].ID)
	assert.Equal(t, items[5].ID, page[1].ID)
	assert.Equal(t, items[6].ID, page[2].ID)
}
