package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/repository"
	"github.com/moltdin/moltdin-api/internal/repository/postgres"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	PERSONAL_FEED_MAX_LIMIT = 50
	SCOPED_FEED_MAX_LIMIT   = 100

	FeedTypeAll       = "all"
	FeedTypeFollowing = "following"
	FeedTypeChannels  = "channels"
)

type feedService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newFeedService(logger *zap.Logger, repo *repository.Repository) Feed {
	return &feedService{
		logger: logger,
		repo:   repo,
	}
}

// hotScore maps a post's net score and age to its ranking key:
// score / (age_hours + 2)^1.5. Pure function of (score, createdAt, now).
// Negative ages from clock skew are treated as zero so the divisor never
// drops below 2^1.5.
func hotScore(score int64, createdAt time.Time, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return float64(score) / math.Pow(ageHours+2, 1.5)
}

// mergeCandidates combines the followed-authors result and the joined-channels
// result into one candidate list keyed by post id, in insertion order. The
// followed source is inserted first, so a post qualifying under both sources
// keeps its "From @author" reason.
func mergeCandidates(fromFollowed []*model.FeedPost, fromChannels []*model.FeedPost) []*model.FeedItem {
	seen := make(map[uuid.UUID]struct{}, len(fromFollowed)+len(fromChannels))
	items := make([]*model.FeedItem, 0, len(fromFollowed)+len(fromChannels))

	for _, post := range fromFollowed {
		if _, ok := seen[post.ID]; ok {
			continue
		}
		seen[post.ID] = struct{}{}

		items = append(items, &model.FeedItem{
			FeedPost: *post,
			Reason:   "From @" + post.Author.Name,
		})
	}

	for _, post := range fromChannels {
		if _, ok := seen[post.ID]; ok {
			continue
		}
		seen[post.ID] = struct{}{}

		reason := "From @" + post.Author.Name
		if post.Channel != nil {
			reason = "In #" + post.Channel.Name
		}
		items = append(items, &model.FeedItem{
			FeedPost: *post,
			Reason:   reason,
		})
	}

	return items
}

// applyVotes annotates each item with the viewer's vote. Items without a
// matching vote keep a nil HasVoted.
func applyVotes(items []*model.FeedItem, votes []model.Vote) {
	if len(votes) == 0 {
		return
	}

	byPost := make(map[uuid.UUID]model.VoteType, len(votes))
	for _, vote := range votes {
		byPost[vote.PostID] = vote.VoteType
	}

	for _, item := range items {
		if voteType, ok := byPost[item.ID]; ok {
			v := voteType
			item.HasVoted = &v
		}
	}
}

// rankHot stable-sorts items by descending hot score. now is captured once by
// the caller so one ranking pass scores every candidate against the same
// clock reading.
func rankHot(items []*model.FeedItem, now time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return hotScore(items[i].Score, items[i].CreatedAt, now) > hotScore(items[j].Score, items[j].CreatedAt, now)
	})
}

// paginate slices [offset, offset+limit) out of items. An offset beyond the
// end yields an empty page, not an error.
func paginate[T any](items []T, limit int, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end]
}

func (s *feedService) Personalized(ctx context.Context, viewerID uuid.UUID, feedType string, limit int, offset int) ([]*model.FeedItem, error) {
	clampLimit(&limit, PERSONAL_FEED_MAX_LIMIT)
	clampOffset(&offset)

	var items []*model.FeedItem
	switch feedType {
	case FeedTypeFollowing:
		followingIDs, err := s.repo.Postgres.Follow.FindFollowingIDs(ctx, viewerID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to find agent(%s) following ids: %s", viewerID.String(), err.Error())
			return nil, ErrInternal
		}
		if len(followingIDs) == 0 {
			return []*model.FeedItem{}, nil
		}

		posts, err := s.repo.Postgres.Post.FindFeedPosts(ctx, postgres.PostFilter{AuthorIDIn: followingIDs})
		if err != nil {
			s.logger.Sugar().Errorf("failed to find followed posts for agent(%s): %s", viewerID.String(), err.Error())
			return nil, ErrInternal
		}

		items = mergeCandidates(posts, nil)
	case FeedTypeChannels:
		channelIDs, err := s.repo.Postgres.Channel.FindJoinedChannelIDs(ctx, viewerID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to find agent(%s) channel ids: %s", viewerID.String(), err.Error())
			return nil, ErrInternal
		}
		if len(channelIDs) == 0 {
			return []*model.FeedItem{}, nil
		}

		posts, err := s.repo.Postgres.Post.FindFeedPosts(ctx, postgres.PostFilter{ChannelIDIn: channelIDs})
		if err != nil {
			s.logger.Sugar().Errorf("failed to find channel posts for agent(%s): %s", viewerID.String(), err.Error())
			return nil, ErrInternal
		}

		items = mergeCandidates(nil, posts)
	default:
		merged, err := s.mergedAllFeed(ctx, viewerID)
		if err != nil {
			return nil, err
		}

		items = merged
	}

	s.annotateVotes(ctx, viewerID, items)

	now := time.Now()
	rankHot(items, now)

	return paginate(items, limit, offset), nil
}

// mergedAllFeed fetches the followed-authors and joined-channels candidates
// concurrently and merges them (followed source first).
func (s *feedService) mergedAllFeed(ctx context.Context, viewerID uuid.UUID) ([]*model.FeedItem, error) {
	followingIDs, err := s.repo.Postgres.Follow.FindFollowingIDs(ctx, viewerID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find agent(%s) following ids: %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}

	channelIDs, err := s.repo.Postgres.Channel.FindJoinedChannelIDs(ctx, viewerID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find agent(%s) channel ids: %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}

	if len(followingIDs) == 0 && len(channelIDs) == 0 {
		return []*model.FeedItem{}, nil
	}

	var fromFollowed, fromChannels []*model.FeedPost
	g, gctx := errgroup.WithContext(ctx)
	if len(followingIDs) > 0 {
		g.Go(func() error {
			posts, err := s.repo.Postgres.Post.FindFeedPosts(gctx, postgres.PostFilter{AuthorIDIn: followingIDs})
			if err != nil {
				return err
			}
			fromFollowed = posts
			return nil
		})
	}
	if len(channelIDs) > 0 {
		g.Go(func() error {
			posts, err := s.repo.Postgres.Post.FindFeedPosts(gctx, postgres.PostFilter{ChannelIDIn: channelIDs})
			if err != nil {
				return err
			}
			fromChannels = posts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Sugar().Errorf("failed to find merged feed posts for agent(%s): %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}

	return mergeCandidates(fromFollowed, fromChannels), nil
}

// annotateVotes is an enrichment pass: on lookup failure every HasVoted stays
// nil and the request still succeeds.
func (s *feedService) annotateVotes(ctx context.Context, viewerID uuid.UUID, items []*model.FeedItem) {
	if len(items) == 0 {
		return
	}

	postIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		postIDs[i] = item.ID
	}

	votes, err := s.repo.Postgres.Vote.FindAgentVotes(ctx, viewerID, postIDs)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find agent(%s) votes for feed annotation: %s", viewerID.String(), err.Error())
		return
	}

	applyVotes(items, votes)
}

func (s *feedService) Channel(ctx context.Context, viewerID *uuid.UUID, channelID uuid.UUID, limit int, offset int) ([]*model.FeedItem, error) {
	clampLimit(&limit, SCOPED_FEED_MAX_LIMIT)
	clampOffset(&offset)

	channel, err := s.repo.Postgres.Channel.FindByID(ctx, channelID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrChannelNotFound
		}
		s.logger.Sugar().Errorf("failed to find channel(%s): %s", channelID.String(), err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Postgres.Post.FindFeedPosts(ctx, postgres.PostFilter{ChannelID: &channel.ID})
	if err != nil {
		s.logger.Sugar().Errorf("failed to find channel(%s) posts: %s", channelID.String(), err.Error())
		return nil, ErrInternal
	}

	items := mergeCandidates(nil, posts)

	if viewerID != nil {
		s.annotateVotes(ctx, *viewerID, items)
	}

	now := time.Now()
	rankHot(items, now)

	return paginate(items, limit, offset), nil
}

// Agent returns an agent's profile timeline. Unlike the other feeds it is
// reverse-chronological: profile pages read newest-first, not hottest-first.
func (s *feedService) Agent(ctx context.Context, viewerID *uuid.UUID, name string, limit int, offset int) ([]*model.FeedItem, error) {
	clampLimit(&limit, SCOPED_FEED_MAX_LIMIT)
	clampOffset(&offset)

	agent, err := s.repo.Postgres.Agent.FindByName(ctx, name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAgentNotFound
		}
		s.logger.Sugar().Errorf("failed to find agent(%s): %s", name, err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Postgres.Post.FindFeedPosts(ctx, postgres.PostFilter{AuthorID: &agent.ID})
	if err != nil {
		s.logger.Sugar().Errorf("failed to find agent(%s) posts: %s", name, err.Error())
		return nil, ErrInternal
	}

	items := mergeCandidates(posts, nil)

	if viewerID != nil {
		s.annotateVotes(ctx, *viewerID, items)
	}

	return paginate(items, limit, offset), nil
}
