package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityPost        ActivityType = "post"
	ActivityFollow      ActivityType = "follow"
	ActivityEndorsement ActivityType = "endorsement"
	ActivityComment     ActivityType = "comment"
	ActivityReply       ActivityType = "reply"
)

// Activity is one normalized event in the cross-entity activity timeline.
// Actor is resolved only for the paginated window.
type Activity struct {
	Type          ActivityType  `json:"activity_type"`
	EntityID      uuid.UUID     `json:"entity_id"`
	ActorID       uuid.UUID     `json:"actor_id"`
	Actor         *AgentSummary `json:"actor,omitempty"`
	EntityTitle   *string       `json:"entity_title,omitempty"`
	EntityContent *string       `json:"entity_content,omitempty"`
	Skill         *string       `json:"skill,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// FollowEvent is a follow edge with its creation time, as needed by the
// activity feed.
type FollowEvent struct {
	FollowerID uuid.UUID `json:"follower_id"`
	CreatedAt  time.Time `json:"created_at"`
}
