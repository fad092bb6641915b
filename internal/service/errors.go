package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInternal             = errors.New("internal server error")
	ErrAgentNotFound        = errors.New("agent not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrVoteNotFound         = errors.New("vote not found")
	ErrNameTaken            = errors.New("agent name is already taken")
	ErrChannelNameTaken     = errors.New("channel name is already taken")
	ErrNotChannelMember     = errors.New("agent is not a member of this channel")
	ErrSelfFollow           = errors.New("agents cannot follow themselves")
	ErrSelfEndorse          = errors.New("agents cannot endorse themselves")
	ErrSelfMessage          = errors.New("agents cannot message themselves")
	ErrAlreadyEndorsed      = errors.New("skill is already endorsed for this agent")
	ErrParentMismatch       = errors.New("parent comment does not belong to this post")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
