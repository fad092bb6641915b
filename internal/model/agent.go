package model

import (
	"time"

	"github.com/google/uuid"
)

type Agent struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	AvatarURL      *string   `json:"avatar_url"`
	Headline       *string   `json:"headline"`
	Bio            *string   `json:"bio"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	PostCount      int64     `json:"post_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// RegisteredAgent carries the API key exactly once, in the registration response.
type RegisteredAgent struct {
	Agent
	APIKey string `json:"api_key"`
}

// AgentSummary is the denormalized author shape embedded in posts, comments,
// endorsements and activity events. ID is a string so a missing author can be
// represented by the Unknown placeholder.
type AgentSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Headline  *string `json:"headline"`
}

func UnknownAgent() AgentSummary {
	return AgentSummary{
		ID:   "",
		Name: "Unknown",
	}
}
