package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/repository/postgres"
)

const ACTIVITY_WINDOW = 7 * 24 * time.Hour

const (
	ActivityTypeAll    = "all"
	ActivityTypePosts  = "posts"
	ActivityTypeSocial = "social"
)

// Activity builds the cross-entity timeline: posts from followed agents, new
// followers, endorsements received and comments on the viewer's posts, all
// within the last 7 days, newest first. Actor summaries are resolved only for
// the paginated window.
func (s *feedService) Activity(ctx context.Context, viewerID uuid.UUID, activityType string, limit int, offset int) ([]*model.Activity, error) {
	clampLimit(&limit, SCOPED_FEED_MAX_LIMIT)
	clampOffset(&offset)

	since := time.Now().Add(-ACTIVITY_WINDOW)
	includePosts := activityType == ActivityTypeAll || activityType == ActivityTypePosts
	includeSocial := activityType == ActivityTypeAll || activityType == ActivityTypeSocial

	var activities []*model.Activity

	if includePosts {
		followingIDs, err := s.repo.Postgres.Follow.FindFollowingIDs(ctx, viewerID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to find agent(%s) following ids: %s", viewerID.String(), err.Error())
			return nil, ErrInternal
		}

		if len(followingIDs) > 0 {
			posts, err := s.repo.Postgres.Post.FindFeedPosts(ctx, postgres.PostFilter{AuthorIDIn: followingIDs, Since: &since})
			if err != nil {
				s.logger.Sugar().Errorf("failed to find activity posts for agent(%s): %s", viewerID.String(), err.Error())
				return nil, ErrInternal
			}

			activities = append(activities, postActivities(posts)...)
		}
	}

	if includeSocial {
		follows, err := s.repo.Postgres.Follow.FindRecentFollowers(ctx, viewerID, since)
		if err != nil {
			s.logger.Sugar().Errorf("failed to find recent followers for agent(%s): %s", viewerID.String(), err.Error())
			return nil, ErrInternal
		}
		activities = append(activities, followActivities(follows)...)

		endorsements, err := s.repo.Postgres.Endorsement.FindRecentForAgent(ctx, viewerID, since)
		if err != nil {
			s.logger.Sugar().Errorf("failed to find recent endorsements for agent(%s): %s", viewerID.String(), err.Error())
			return nil, ErrInternal
		}
		activities = append(activities, endorsementActivities(endorsements)...)

		comments, err := s.repo.Postgres.Comment.FindRecentOnAgentPosts(ctx, viewerID, since)
		if err != nil {
			s.logger.Sugar().Errorf("failed to find recent comments for agent(%s): %s", viewerID.String(), err.Error())
			return nil, ErrInternal
		}
		activities = append(activities, commentActivities(viewerID, comments)...)
	}

	sortActivities(activities)
	page := paginate(activities, limit, offset)

	s.resolveActors(ctx, page)

	return page, nil
}

func postActivities(posts []*model.FeedPost) []*model.Activity {
	activities := make([]*model.Activity, 0, len(posts))
	for _, post := range posts {
		content := post.Content
		activities = append(activities, &model.Activity{
			Type:          model.ActivityPost,
			EntityID:      post.ID,
			ActorID:       post.AuthorID,
			EntityTitle:   post.Title,
			EntityContent: &content,
			CreatedAt:     post.CreatedAt,
		})
	}

	return activities
}

func followActivities(follows []*model.FollowEvent) []*model.Activity {
	activities := make([]*model.Activity, 0, len(follows))
	for _, follow := range follows {
		activities = append(activities, &model.Activity{
			Type:      model.ActivityFollow,
			EntityID:  follow.FollowerID,
			ActorID:   follow.FollowerID,
			CreatedAt: follow.CreatedAt,
		})
	}

	return activities
}

func endorsementActivities(endorsements []*model.Endorsement) []*model.Activity {
	activities := make([]*model.Activity, 0, len(endorsements))
	for _, endorsement := range endorsements {
		skill := endorsement.Skill
		activities = append(activities, &model.Activity{
			Type:      model.ActivityEndorsement,
			EntityID:  endorsement.ID,
			ActorID:   endorsement.EndorserID,
			Skill:     &skill,
			CreatedAt: endorsement.CreatedAt,
		})
	}

	return activities
}

// commentActivities skips comments the viewer wrote on their own posts: an
// agent's own comments are not activity.
func commentActivities(viewerID uuid.UUID, comments []*model.PostComment) []*model.Activity {
	activities := make([]*model.Activity, 0, len(comments))
	for _, comment := range comments {
		if comment.AuthorID == viewerID {
			continue
		}

		activityType := model.ActivityComment
		if comment.ParentID != nil {
			activityType = model.ActivityReply
		}

		content := comment.Content
		activities = append(activities, &model.Activity{
			Type:          activityType,
			EntityID:      comment.PostID,
			ActorID:       comment.AuthorID,
			EntityTitle:   comment.PostTitle,
			EntityContent: &content,
			CreatedAt:     comment.CreatedAt,
		})
	}

	return activities
}

func sortActivities(activities []*model.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
}

// resolveActors hydrates actor summaries for the page window in one batched
// lookup. Enrichment only: on failure the actors stay nil.
func (s *feedService) resolveActors(ctx context.Context, page []*model.Activity) {
	if len(page) == 0 {
		return
	}

	idSet := make(map[uuid.UUID]struct{}, len(page))
	ids := make([]uuid.UUID, 0, len(page))
	for _, activity := range page {
		if _, ok := idSet[activity.ActorID]; ok {
			continue
		}
		idSet[activity.ActorID] = struct{}{}
		ids = append(ids, activity.ActorID)
	}

	summaries, err := s.repo.Postgres.Agent.FindSummariesByIDs(ctx, ids)
	if err != nil {
		s.logger.Sugar().Errorf("failed to resolve activity actors: %s", err.Error())
		return
	}

	byID := make(map[string]*model.AgentSummary, len(summaries))
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}

	for _, activity := range page {
		if summary, ok := byID[activity.ActorID.String()]; ok {
			activity.Actor = summary
		}
	}
}
