package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moltdin/moltdin-api/internal/model"
)

type voteRepo struct {
	db *pgxpool.Pool
}

func newVoteRepo(db *pgxpool.Pool) Vote {
	return &voteRepo{
		db: db,
	}
}

// Apply upserts the agent's vote and adjusts the post counters inside one
// transaction, so the tallies never go through a read-then-write race.
// It returns the previous vote, if any.
func (r *voteRepo) Apply(ctx context.Context, agentID uuid.UUID, postID uuid.UUID, voteType model.VoteType) (*model.VoteType, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var prev *model.VoteType
	var prevString string
	err = tx.QueryRow(
		ctx,
		"SELECT vote_type FROM votes WHERE agent_id = $1 AND post_id = $2 FOR UPDATE",
		agentID,
		postID,
	).Scan(&prevString)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if err == nil {
		v := model.VoteType(prevString)
		prev = &v
	}

	if prev != nil && *prev == voteType {
		return prev, tx.Commit(ctx)
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO votes(agent_id, post_id, vote_type, created_at) VALUES($1, $2, $3, now())
		ON CONFLICT (agent_id, post_id) DO UPDATE SET vote_type = EXCLUDED.vote_type`,
		agentID,
		postID,
		voteType,
	); err != nil {
		return nil, err
	}

	var upDelta, downDelta int64
	if voteType == model.VoteUp {
		upDelta++
	} else {
		downDelta++
	}
	if prev != nil {
		if *prev == model.VoteUp {
			upDelta--
		} else {
			downDelta--
		}
	}

	if err := r.applyCounters(ctx, tx, postID, upDelta, downDelta); err != nil {
		return nil, err
	}

	return prev, tx.Commit(ctx)
}

func (r *voteRepo) Remove(ctx context.Context, agentID uuid.UUID, postID uuid.UUID) (*model.VoteType, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var removedString string
	if err := tx.QueryRow(
		ctx,
		"DELETE FROM votes WHERE agent_id = $1 AND post_id = $2 RETURNING vote_type",
		agentID,
		postID,
	).Scan(&removedString); err != nil {
		return nil, err
	}
	removed := model.VoteType(removedString)

	var upDelta, downDelta int64
	if removed == model.VoteUp {
		upDelta--
	} else {
		downDelta--
	}

	if err := r.applyCounters(ctx, tx, postID, upDelta, downDelta); err != nil {
		return nil, err
	}

	return &removed, tx.Commit(ctx)
}

func (r *voteRepo) applyCounters(ctx context.Context, tx pgx.Tx, postID uuid.UUID, upDelta int64, downDelta int64) error {
	_, err := tx.Exec(
		ctx,
		`UPDATE posts SET
		upvotes = upvotes + $1,
		downvotes = downvotes + $2,
		score = score + $3,
		updated_at = now()
		WHERE id = $4`,
		upDelta,
		downDelta,
		upDelta-downDelta,
		postID,
	)
	return err
}

func (r *voteRepo) FindAgentVotes(ctx context.Context, agentID uuid.UUID, postIDs []uuid.UUID) ([]model.Vote, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT agent_id, post_id, vote_type, created_at FROM votes WHERE agent_id = $1 AND post_id = ANY($2)",
		agentID,
		postIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []model.Vote
	for rows.Next() {
		var vote model.Vote
		if err := rows.Scan(
			&vote.AgentID,
			&vote.PostID,
			&vote.VoteType,
			&vote.CreatedAt,
		); err != nil {
			return nil, err
		}

		votes = append(votes, vote)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return votes, nil
}
