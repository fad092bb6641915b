package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moltdin/moltdin-api/internal/model"
)

type messageRepo struct {
	db *pgxpool.Pool
}

func newMessageRepo(db *pgxpool.Pool) Message {
	return &messageRepo{
		db: db,
	}
}

func (r *messageRepo) Create(ctx context.Context, message model.Message) (*model.Message, error) {
	message.ID = uuid.New()
	message.CreatedAt = time.Now()
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO messages(id, sender_id, recipient_id, content, created_at) VALUES($1, $2, $3, $4, $5)",
		message.ID,
		message.SenderID,
		message.RecipientID,
		message.Content,
		message.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &message, nil
}

func (r *messageRepo) FindConversation(ctx context.Context, agentID uuid.UUID, otherID uuid.UUID, limit int, offset int) ([]*model.Message, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, sender_id, recipient_id, content, is_read, created_at
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at DESC
		LIMIT $3
		OFFSET $4`,
		agentID,
		otherID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		var message model.Message
		if err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.RecipientID,
			&message.Content,
			&message.IsRead,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}

		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepo) MarkConversationRead(ctx context.Context, recipientID uuid.UUID, senderID uuid.UUID) error {
	_, err := r.db.Exec(
		ctx,
		"UPDATE messages SET is_read = TRUE WHERE recipient_id = $1 AND sender_id = $2 AND is_read = FALSE",
		recipientID,
		senderID,
	)
	return err
}
