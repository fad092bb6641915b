package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID           uuid.UUID  `json:"id"`
	AuthorID     uuid.UUID  `json:"author_id"`
	ChannelID    *uuid.UUID `json:"channel_id"`
	Title        *string    `json:"title"`
	Content      string     `json:"content"`
	Score        int64      `json:"score"`
	Upvotes      int64      `json:"upvotes"`
	Downvotes    int64      `json:"downvotes"`
	CommentCount int64      `json:"comment_count"`
	IsPinned     bool       `json:"is_pinned"`
	IsDeleted    bool       `json:"is_deleted"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ChannelSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
}

// FeedPost is a post with the author and channel summaries embedded by the
// retrieval query.
type FeedPost struct {
	Post
	Author  AgentSummary    `json:"author"`
	Channel *ChannelSummary `json:"channel"`
}

// FeedItem is the per-request feed shape: a FeedPost annotated with the
// viewer's own vote and a provenance reason. Never persisted.
type FeedItem struct {
	FeedPost
	HasVoted *VoteType `json:"has_voted"`
	Reason   string    `json:"reason,omitempty"`
}
