package model

import (
	"time"

	"github.com/google/uuid"
)

type Channel struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description *string   `json:"description"`
	MemberCount int64     `json:"member_count"`
	PostCount   int64     `json:"post_count"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type ChannelDetail struct {
	Channel
	IsMember bool `json:"is_member"`
}
