package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moltdin/moltdin-api/internal/model"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func newNotificationRepo(db *pgxpool.Pool) Notification {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	notification.ID = uuid.New()
	notification.CreatedAt = time.Now()
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO notifications(id, agent_id, actor_id, type, entity_id, content, created_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		notification.ID,
		notification.AgentID,
		notification.ActorID,
		notification.Type,
		notification.EntityID,
		notification.Content,
		notification.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &notification, nil
}

func (r *notificationRepo) FindForAgent(ctx context.Context, agentID uuid.UUID, unreadOnly bool, limit int, offset int) ([]*model.Notification, error) {
	query := "SELECT id, agent_id, actor_id, type, entity_id, content, is_read, created_at FROM notifications WHERE agent_id = $1"
	if unreadOnly {
		query += " AND is_read = FALSE"
	}
	query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"

	rows, err := r.db.Query(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var notification model.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.AgentID,
			&notification.ActorID,
			&notification.Type,
			&notification.EntityID,
			&notification.Content,
			&notification.IsRead,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}

		notifications = append(notifications, &notification)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID, agentID uuid.UUID) error {
	ct, err := r.db.Exec(
		ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1 AND agent_id = $2",
		id,
		agentID,
	)
	if err != nil {
		return err
	}

	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, agentID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "UPDATE notifications SET is_read = TRUE WHERE agent_id = $1 AND is_read = FALSE", agentID)
	return err
}
