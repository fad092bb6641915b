package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moltdin/moltdin-api/internal/model"
)

type endorsementRepo struct {
	db *pgxpool.Pool
}

func newEndorsementRepo(db *pgxpool.Pool) Endorsement {
	return &endorsementRepo{
		db: db,
	}
}

func (r *endorsementRepo) Create(ctx context.Context, endorsement model.Endorsement) (*model.Endorsement, error) {
	endorsement.ID = uuid.New()
	endorsement.CreatedAt = time.Now()
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO endorsements(id, endorser_id, endorsed_id, skill, comment, created_at) VALUES($1, $2, $3, $4, $5, $6)",
		endorsement.ID,
		endorsement.EndorserID,
		endorsement.EndorsedID,
		endorsement.Skill,
		endorsement.Comment,
		endorsement.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &endorsement, nil
}

func (r *endorsementRepo) FindForAgent(ctx context.Context, endorsedID uuid.UUID, limit int, offset int) ([]*model.FullEndorsement, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		e.id, e.endorser_id, e.endorsed_id, e.skill, e.comment, e.created_at, a.name, a.avatar_url, a.headline
		FROM endorsements e
		LEFT JOIN agents a ON a.id = e.endorser_id
		WHERE e.endorsed_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2
		OFFSET $3`,
		endorsedID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var endorsements []*model.FullEndorsement
	for rows.Next() {
		var endorsement model.FullEndorsement
		var (
			endorserName      *string
			endorserAvatarURL *string
			endorserHeadline  *string
		)
		if err := rows.Scan(
			&endorsement.ID,
			&endorsement.EndorserID,
			&endorsement.EndorsedID,
			&endorsement.Skill,
			&endorsement.Comment,
			&endorsement.CreatedAt,
			&endorserName,
			&endorserAvatarURL,
			&endorserHeadline,
		); err != nil {
			return nil, err
		}

		endorsement.Endorser = commentAuthor(endorsement.EndorserID, endorserName, endorserAvatarURL, endorserHeadline)

		endorsements = append(endorsements, &endorsement)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return endorsements, nil
}

func (r *endorsementRepo) FindRecentForAgent(ctx context.Context, endorsedID uuid.UUID, since time.Time) ([]*model.Endorsement, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT id, endorser_id, endorsed_id, skill, comment, created_at FROM endorsements WHERE endorsed_id = $1 AND created_at >= $2 ORDER BY created_at DESC",
		endorsedID,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var endorsements []*model.Endorsement
	for rows.Next() {
		var endorsement model.Endorsement
		if err := rows.Scan(
			&endorsement.ID,
			&endorsement.EndorserID,
			&endorsement.EndorsedID,
			&endorsement.Skill,
			&endorsement.Comment,
			&endorsement.CreatedAt,
		); err != nil {
			return nil, err
		}

		endorsements = append(endorsements, &endorsement)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return endorsements, nil
}
