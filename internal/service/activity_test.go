package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPostComment(authorID uuid.UUID, parentID *uuid.UUID, createdAt time.Time) *model.PostComment {
	return &model.PostComment{
		FullComment: model.FullComment{
			Comment: model.Comment{
				ID:        uuid.New(),
				PostID:    uuid.New(),
				ParentID:  parentID,
				AuthorID:  authorID,
				Content:   "nice work",
				CreatedAt: createdAt,
			},
		},
	}
}

func TestCommentActivities_SkipsViewerOwnComments(t *testing.T) {
	viewerID := uuid.New()
	otherID := uuid.New()
	now := time.Now()

	activities := commentActivities(viewerID, []*model.PostComment{
		testPostComment(viewerID, nil, now),
		testPostComment(otherID, nil, now),
	})

	require.Len(t, activities, 1)
	assert.Equal(t, otherID, activities[0].ActorID)
}

func TestCommentActivities_ReplyType(t *testing.T) {
	viewerID := uuid.New()
	otherID := uuid.New()
	parentID := uuid.New()
	now := time.Now()

	activities := commentActivities(viewerID, []*model.PostComment{
		testPostComment(otherID, nil, now),
		testPostComment(otherID, &parentID, now),
	})

	require.Len(t, activities, 2)
	assert.Equal(t, model.ActivityComment, activities[0].Type)
	assert.Equal(t, model.ActivityReply, activities[1].Type)
}

func TestPostActivities(t *testing.T) {
	now := time.Now()
	title := "hot take"
	post := testFeedPost("ada", nil, 3, now)
	post.Title = &title

	activities := postActivities([]*model.FeedPost{post})

	require.Len(t, activities, 1)
	assert.Equal(t, model.ActivityPost, activities[0].Type)
	assert.Equal(t, post.ID, activities[0].EntityID)
	assert.Equal(t, post.AuthorID, activities[0].ActorID)
	assert.Equal(t, &title, activities[0].EntityTitle)
	require.NotNil(t, activities[0].EntityContent)
	assert.Equal(t, post.Content, *activities[0].EntityContent)
}

func TestFollowActivities(t *testing.T) {
	followerID := uuid.New()
	now := time.Now()

	activities := followActivities([]*model.FollowEvent{
		{FollowerID: followerID, CreatedAt: now},
	})

	require.Len(t, activities, 1)
	assert.Equal(t, model.ActivityFollow, activities[0].Type)
	assert.Equal(t, followerID, activities[0].ActorID)
	assert.Equal(t, followerID, activities[0].EntityID)
}

func TestEndorsementActivities(t *testing.T) {
	endorserID := uuid.New()
	now := time.Now()

	activities := endorsementActivities([]*model.Endorsement{
		{ID: uuid.New(), EndorserID: endorserID, EndorsedID: uuid.New(), Skill: "golang", CreatedAt: now},
	})

	require.Len(t, activities, 1)
	assert.Equal(t, model.ActivityEndorsement, activities[0].Type)
	assert.Equal(t, endorserID, activities[0].ActorID)
	require.NotNil(t, activities[0].Skill)
	assert.Equal(t, "golang", *activities[0].Skill)
}

func TestSortActivities_NewestFirstAndStable(t *testing.T) {
	now := time.Now()

	oldest := &model.Activity{Type: model.ActivityPost, EntityID: uuid.New(), CreatedAt: now.Add(-3 * time.Hour)}
	tieA := &model.Activity{Type: model.ActivityFollow, EntityID: uuid.New(), CreatedAt: now.Add(-1 * time.Hour)}
	tieB := &model.Activity{Type: model.ActivityComment, EntityID: uuid.New(), CreatedAt: now.Add(-1 * time.Hour)}
	newest := &model.Activity{Type: model.ActivityEndorsement, EntityID: uuid.New(), CreatedAt: now}

	activities := []*model.Activity{oldest, tieA, tieB, newest}
	sortActivities(activities)

	assert.Equal(t, newest.EntityID, activities[0].EntityID)
	assert.Equal(t, tieA.EntityID, activities[1].EntityID)
	assert.Equal(t, tieB.EntityID, activities[2].EntityID)
	assert.Equal(t, oldest.EntityID, activities[3].EntityID)
}
