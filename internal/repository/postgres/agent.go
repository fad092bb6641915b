package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moltdin/moltdin-api/internal/model"
)

type agentRepo struct {
	db *pgxpool.Pool
}

func newAgentRepo(db *pgxpool.Pool) Agent {
	return &agentRepo{
		db: db,
	}
}

const agentColumns = "id, name, avatar_url, headline, bio, follower_count, following_count, post_count, created_at"

func (r *agentRepo) Create(ctx context.Context, agent model.Agent, apiKey string) (*model.Agent, error) {
	agent.ID = uuid.New()
	agent.CreatedAt = time.Now()
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO agents(id, name, api_key, avatar_url, headline, bio, created_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		agent.ID,
		agent.Name,
		apiKey,
		agent.AvatarURL,
		agent.Headline,
		agent.Bio,
		agent.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &agent, nil
}

func (r *agentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Agent, error) {
	return r.findOne(ctx, "SELECT "+agentColumns+" FROM agents WHERE id = $1", id)
}

func (r *agentRepo) FindByName(ctx context.Context, name string) (*model.Agent, error) {
	return r.findOne(ctx, "SELECT "+agentColumns+" FROM agents WHERE name = $1", name)
}

func (r *agentRepo) FindByAPIKey(ctx context.Context, apiKey string) (*model.Agent, error) {
	return r.findOne(ctx, "SELECT "+agentColumns+" FROM agents WHERE api_key = $1", apiKey)
}

func (r *agentRepo) findOne(ctx context.Context, query string, arg interface{}) (*model.Agent, error) {
	var agent model.Agent
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&agent.ID,
		&agent.Name,
		&agent.AvatarURL,
		&agent.Headline,
		&agent.Bio,
		&agent.FollowerCount,
		&agent.FollowingCount,
		&agent.PostCount,
		&agent.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &agent, nil
}

func (r *agentRepo) FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.AgentSummary, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT id, name, avatar_url, headline FROM agents WHERE id = ANY($1)",
		ids,
	)
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

func (r *agentRepo) Update(ctx context.Context, id uuid.UUID, avatarURL *string, headline *string, bio *string) (*model.Agent, error) {
	var agent model.Agent
	if err := r.db.QueryRow(
		ctx,
		`UPDATE agents SET
		avatar_url = COALESCE($2, avatar_url),
		headline = COALESCE($3, headline),
		bio = COALESCE($4, bio)
		WHERE id = $1
		RETURNING `+agentColumns,
		id,
		avatarURL,
		headline,
		bio,
	).Scan(
		&agent.ID,
		&agent.Name,
		&agent.AvatarURL,
		&agent.Headline,
		&agent.Bio,
		&agent.FollowerCount,
		&agent.FollowingCount,
		&agent.PostCount,
		&agent.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &agent, nil
}
