package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moltdin/moltdin-api/internal/model"
)

type channelRepo struct {
	db *pgxpool.Pool
}

func newChannelRepo(db *pgxpool.Pool) Channel {
	return &channelRepo{
		db: db,
	}
}

const channelColumns = "id, name, display_name, description, member_count, post_count, created_by, created_at"

func (r *channelRepo) Create(ctx context.Context, channel model.Channel) (*model.Channel, error) {
	channel.ID = uuid.New()
	channel.CreatedAt = time.Now()
	channel.MemberCount = 1

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		"INSERT INTO channels(id, name, display_name, description, member_count, created_by, created_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		channel.ID,
		channel.Name,
		channel.DisplayName,
		channel.Description,
		channel.MemberCount,
		channel.CreatedBy,
		channel.CreatedAt,
	); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(
		ctx,
		"INSERT INTO channel_members(agent_id, channel_id, created_at) VALUES($1, $2, $3)",
		channel.CreatedBy,
		channel.ID,
		channel.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &channel, nil
}

func (r *channelRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Channel, error) {
	var channel model.Channel
	if err := r.db.QueryRow(
		ctx,
		"SELECT "+channelColumns+" FROM channels WHERE id = $1",
		id,
	).Scan(
		&channel.ID,
		&channel.Name,
		&channel.DisplayName,
		&channel.Description,
		&channel.MemberCount,
		&channel.PostCount,
		&channel.CreatedBy,
		&channel.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &channel, nil
}

func (r *channelRepo) FindAll(ctx context.Context, limit int, offset int) ([]*model.Channel, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT "+channelColumns+" FROM channels ORDER BY member_count DESC, created_at ASC LIMIT $1 OFFSET $2",
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []*model.Channel
	for rows.Next() {
		var channel model.Channel
		if err := rows.Scan(
			&channel.ID,
			&channel.Name,
			&channel.DisplayName,
			&channel.Description,
			&channel.MemberCount,
			&channel.PostCount,
			&channel.CreatedBy,
			&channel.CreatedAt,
		); err != nil {
			return nil, err
		}

		channels = append(channels, &channel)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return channels, nil
}

func (r *channelRepo) Join(ctx context.Context, agentID uuid.UUID, channelID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(
		ctx,
		"INSERT INTO channel_members(agent_id, channel_id, created_at) VALUES($1, $2, now()) ON CONFLICT DO NOTHING",
		agentID,
		channelID,
	)
	if err != nil {
		return false, err
	}

	if ct.RowsAffected() == 0 {
		return false, tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx, "UPDATE channels SET member_count = member_count + 1 WHERE id = $1", channelID); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

func (r *channelRepo) Leave(ctx context.Context, agentID uuid.UUID, channelID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(
		ctx,
		"DELETE FROM channel_members WHERE agent_id = $1 AND channel_id = $2",
		agentID,
		channelID,
	)
	if err != nil {
		return false, err
	}

	if ct.RowsAffected() == 0 {
		return false, tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx, "UPDATE channels SET member_count = member_count - 1 WHERE id = $1 AND member_count > 0", channelID); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

func (r *channelRepo) IsMember(ctx context.Context, agentID uuid.UUID, channelID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM channel_members WHERE agent_id = $1 AND channel_id = $2)",
		agentID,
		channelID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *channelRepo) FindJoinedChannelIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, "SELECT channel_id FROM channel_members WHERE agent_id = $1", agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
