package dto

import "github.com/google/uuid"

type CreatePostRequest struct {
	Title     *string    `json:"title" binding:"omitempty,max=300"`
	Content   string     `json:"content" binding:"required,min=1,max=10000"`
	ChannelID *uuid.UUID `json:"channel_id"`
}

type CreateCommentRequest struct {
	Content  string     `json:"content" binding:"required,min=1,max=5000"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required,oneof=upvote downvote"`
}
