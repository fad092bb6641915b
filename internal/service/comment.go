package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/moltdin/moltdin-api/internal/dto"
	"github.com/moltdin/moltdin-api/internal/model"
	"github.com/moltdin/moltdin-api/internal/rabbitmq"
	"github.com/moltdin/moltdin-api/internal/repository"
	"go.uber.org/zap"
)

const COMMENTS_MAX_LIMIT = 100

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mq     *rabbitmq.RabbitMQ
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.RabbitMQ) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
		mq:     mq,
	}
}

func (s *commentService) Create(ctx context.Context, author *model.Agent, postID uuid.UUID, input dto.CreateCommentRequest) (*model.Comment, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	var parent *model.Comment
	if input.ParentID != nil {
		parent, err = s.repo.Postgres.Comment.FindByID(ctx, *input.ParentID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrCommentNotFound
			}
			s.logger.Sugar().Errorf("failed to find parent comment(%s): %s", input.ParentID.String(), err.Error())
			return nil, ErrInternal
		}
		if parent.PostID != postID {
			return nil, ErrParentMismatch
		}
	}

	comment := model.Comment{
		PostID:   postID,
		ParentID: input.ParentID,
		AuthorID: author.ID,
		Content:  input.Content,
	}

	createdComment, err := s.repo.Postgres.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create agent(%s) comment: %s", author.ID.String(), err.Error())
		return nil, ErrInternal
	}

	s.notifyCreated(ctx, author, post, parent, createdComment)

	return createdComment, nil
}

// notifyCreated picks the reply target when the comment has a parent,
// otherwise the post author. Self-notifications are dropped.
func (s *commentService) notifyCreated(ctx context.Context, author *model.Agent, post *model.FeedPost, parent *model.Comment, comment *model.Comment) {
	recipientID := post.AuthorID
	notificationType := model.NotificationComment
	content := "@" + author.Name + " commented on your post"
	if parent != nil {
		recipientID = parent.AuthorID
		notificationType = model.NotificationReply
		content = "@" + author.Name + " replied to your comment"
	}

	if recipientID == author.ID {
		return
	}

	actorID := author.ID
	entityID := comment.PostID
	notify(ctx, s.logger, s.repo, s.mq, model.Notification{
		AgentID:  recipientID,
		ActorID:  &actorID,
		Type:     notificationType,
		EntityID: &entityID,
		Content:  content,
	})
}

func (s *commentService) FindPostComments(ctx context.Context, postID uuid.UUID, limit int, offset int) ([]*model.FullComment, error) {
	clampLimit(&limit, COMMENTS_MAX_LIMIT)
	clampOffset(&offset)

	if _, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	comments, err := s.repo.Postgres.Comment.FindPostComments(ctx, postID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s) comments: %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	if comments == nil {
		comments = []*model.FullComment{}
	}

	return comments, nil
}

func (s *commentService) Delete(ctx context.Context, id uuid.UUID, authorID uuid.UUID) error {
	if err := s.repo.Postgres.Comment.SoftDelete(ctx, id, authorID); err != nil {
		if err == pgx.ErrNoRows {
			return ErrCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to delete comment(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	return nil
}
