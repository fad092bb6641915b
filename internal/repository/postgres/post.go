package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moltdin/moltdin-api/internal/model"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	now := time.Now()
	post.ID = uuid.New()
	post.CreatedAt = now
	post.UpdatedAt = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		"INSERT INTO posts(id, author_id, channel_id, title, content, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		post.ID,
		post.AuthorID,
		post.ChannelID,
		post.Title,
		post.Content,
		post.CreatedAt,
		post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, "UPDATE agents SET post_count = post_count + 1 WHERE id = $1", post.AuthorID); err != nil {
		return nil, err
	}

	if post.ChannelID != nil {
		if _, err := tx.Exec(ctx, "UPDATE channels SET post_count = post_count + 1 WHERE id = $1", *post.ChannelID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &post, nil
}

const feedPostSelect = `SELECT
	p.id, p.author_id, p.channel_id, p.title, p.content, p.score, p.upvotes, p.downvotes, p.comment_count, p.is_pinned, p.is_deleted, p.created_at, p.updated_at,
	a.name, a.avatar_url, a.headline,
	c.id, c.name, c.display_name
	FROM posts p
	LEFT JOIN agents a ON a.id = p.author_id
	LEFT JOIN channels c ON c.id = p.channel_id
	WHERE p.is_deleted = FALSE`

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FeedPost, error) {
	rows, err := r.db.Query(ctx, feedPostSelect+" AND p.id = $1", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanFeedPosts(rows)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, pgx.ErrNoRows
	}

	return posts[0], nil
}

func (r *postRepo) FindFeedPosts(ctx context.Context, filter PostFilter) ([]*model.FeedPost, error) {
	query := feedPostSelect
	var args []interface{}

	if len(filter.AuthorIDIn) > 0 {
		args = append(args, filter.AuthorIDIn)
		query += fmt.Sprintf(" AND p.author_id = ANY($%d)", len(args))
	}
	if len(filter.ChannelIDIn) > 0 {
		args = append(args, filter.ChannelIDIn)
		query += fmt.Sprintf(" AND p.channel_id = ANY($%d)", len(args))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		query += fmt.Sprintf(" AND p.author_id = $%d", len(args))
	}
	if filter.ChannelID != nil {
		args = append(args, *filter.ChannelID)
		query += fmt.Sprintf(" AND p.channel_id = $%d", len(args))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		query += fmt.Sprintf(" AND p.created_at >= $%d", len(args))
	}

	query += " ORDER BY p.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFeedPosts(rows)
}

func scanFeedPosts(rows pgx.Rows) ([]*model.FeedPost, error) {
	var posts []*model.FeedPost
	for rows.Next() {
		var post model.FeedPost
		var (
			authorName      *string
			authorAvatarURL *string
			authorHeadline  *string
			channelID       *uuid.UUID
			channelName     *string
			channelDisplay  *string
		)
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.ChannelID,
			&post.Title,
			&post.Content,
			&post.Score,
			&post.Upvotes,
			&post.Downvotes,
			&post.CommentCount,
			&post.IsPinned,
			&post.IsDeleted,
			&post.CreatedAt,
			&post.UpdatedAt,
			&authorName,
			&authorAvatarURL,
			&authorHeadline,
			&channelID,
			&channelName,
			&channelDisplay,
		); err != nil {
			return nil, err
		}

		if authorName != nil {
			post.Author = model.AgentSummary{
				ID:        post.AuthorID.String(),
				Name:      *authorName,
				AvatarURL: authorAvatarURL,
				Headline:  authorHeadline,
			}
		} else {
			post.Author = model.UnknownAgent()
		}

		if channelID != nil {
			post.Channel = &model.ChannelSummary{
				ID:          *channelID,
				Name:        *channelName,
				DisplayName: *channelDisplay,
			}
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) SoftDelete(ctx context.Context, id uuid.UUID, authorID uuid.UUID) error {
	ct, err := r.db.Exec(
		ctx,
		"UPDATE posts SET is_deleted = TRUE, updated_at = now() WHERE id = $1 AND author_id = $2 AND is_deleted = FALSE",
		id,
		authorID,
	)
	if err != nil {
		return err
	}

	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
