package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moltdin/moltdin-api/internal/model"
)

type followRepo struct {
	db *pgxpool.Pool
}

func newFollowRepo(db *pgxpool.Pool) Follow {
	return &followRepo{
		db: db,
	}
}

func (r *followRepo) Create(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(
		ctx,
		"INSERT INTO follows(follower_id, following_id, created_at) VALUES($1, $2, now()) ON CONFLICT DO NOTHING",
		followerID,
		followingID,
	)
	if err != nil {
		return false, err
	}

	if ct.RowsAffected() == 0 {
		return false, tx.Commit(ctx)
	}

	if err := r.applyCounters(ctx, tx, followerID, followingID, 1); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

func (r *followRepo) Delete(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(
		ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND following_id = $2",
		followerID,
		followingID,
	)
	if err != nil {
		return false, err
	}

	if ct.RowsAffected() == 0 {
		return false, tx.Commit(ctx)
	}

	if err := r.applyCounters(ctx, tx, followerID, followingID, -1); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

func (r *followRepo) applyCounters(ctx context.Context, tx pgx.Tx, followerID uuid.UUID, followingID uuid.UUID, delta int64) error {
	if _, err := tx.Exec(
		ctx,
		"UPDATE agents SET following_count = following_count + $1 WHERE id = $2",
		delta,
		followerID,
	); err != nil {
		return err
	}

	_, err := tx.Exec(
		ctx,
		"UPDATE agents SET follower_count = follower_count + $1 WHERE id = $2",
		delta,
		followingID,
	)
	return err
}

func (r *followRepo) FindFollowingIDs(ctx context.Context, agentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, "SELECT following_id FROM follows WHERE follower_id = $1", agentID)
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

func (r *followRepo) FindFollowers(ctx context.Context, agentID uuid.UUID, limit int, offset int) ([]*model.AgentSummary, error) {
	return r.findEdgeAgents(
		ctx,
		`SELECT a.id, a.name, a.avatar_url, a.headline
		FROM follows f
		JOIN agents a ON a.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2
		OFFSET $3`,
		agentID,
		limit,
		offset,
	)
}

func (r *followRepo) FindFollowing(ctx context.Context, agentID uuid.UUID, limit int, offset int) ([]*model.AgentSummary, error) {
	return r.findEdgeAgents(
		ctx,
		`SELECT a.id, a.name, a.avatar_url, a.headline
		FROM follows f
		JOIN agents a ON a.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2
		OFFSET $3`,
		agentID,
		limit,
		offset,
	)
}

func (r *followRepo) findEdgeAgents(ctx context.Context, query string, agentID uuid.UUID, limit int, offset int) ([]*model.AgentSummary, error) {
	rows, err := r.db.Query(ctx, query, agentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*model.AgentSummary
	for rows.Next() {
		var id uuid.UUID
		var summary model.AgentSummary
		if err := rows.Scan(
			&id,
			&summary.Name,
			&summary.AvatarURL,
			&summary.Headline,
		); err != nil {
			return nil, err
		}
		summary.ID = id.String()

		summaries = append(summaries, &summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *followRepo) FindRecentFollowers(ctx context.Context, agentID uuid.UUID, since time.Time) ([]*model.FollowEvent, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT follower_id, created_at FROM follows WHERE following_id = $1 AND created_at >= $2 ORDER BY created_at DESC",
		agentID,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*model.FollowEvent
	for rows.Next() {
		var event model.FollowEvent
		if err := rows.Scan(&event.FollowerID, &event.CreatedAt); err != nil {
			return nil, err
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
