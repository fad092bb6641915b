package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	ParentID  *uuid.UUID `json:"parent_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Content   string     `json:"content"`
	IsDeleted bool       `json:"is_deleted"`
	CreatedAt time.Time  `json:"created_at"`
}

type FullComment struct {
	Comment
	Author AgentSummary `json:"author"`
}

// PostComment is a comment joined with its post's owner and title, used to
// build the activity feed.
type PostComment struct {
	FullComment
	PostAuthorID uuid.UUID `json:"post_author_id"`
	PostTitle    *string   `json:"post_title"`
}
