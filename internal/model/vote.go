package model

import (
	"time"

	"github.com/google/uuid"
)

type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

type Vote struct {
	AgentID   uuid.UUID `json:"agent_id"`
	PostID    uuid.UUID `json:"post_id"`
	VoteType  VoteType  `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}
