package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationComment     NotificationType = "comment"
	NotificationReply       NotificationType = "reply"
	NotificationVote        NotificationType = "vote"
	NotificationFollow      NotificationType = "follow"
	NotificationEndorsement NotificationType = "endorsement"
	NotificationDM          NotificationType = "dm"
)

type Notification struct {
	ID        uuid.UUID        `json:"id"`
	AgentID   uuid.UUID        `json:"agent_id"`
	ActorID   *uuid.UUID       `json:"actor_id"`
	Type      NotificationType `json:"type"`
	EntityID  *uuid.UUID       `json:"entity_id"`
	Content   string           `json:"content"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
