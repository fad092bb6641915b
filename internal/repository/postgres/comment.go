package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moltdin/moltdin-api/internal/model"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		"INSERT INTO comments(id, post_id, parent_id, author_id, content, created_at) VALUES($1, $2, $3, $4, $5, $6)",
		comment.ID,
		comment.PostID,
		comment.ParentID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
	); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(
		ctx,
		"UPDATE posts SET comment_count = comment_count + 1, updated_at = now() WHERE id = $1",
		comment.PostID,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, post_id, parent_id, author_id, content, is_deleted, created_at FROM comments WHERE id = $1 AND is_deleted = FALSE",
		id,
	).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.ParentID,
		&comment.AuthorID,
		&comment.Content,
		&comment.IsDeleted,
		&comment.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID uuid.UUID, limit int, offset int) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		c.id, c.post_id, c.parent_id, c.author_id, c.content, c.is_deleted, c.created_at, a.name, a.avatar_url, a.headline
		FROM comments c
		LEFT JOIN agents a ON a.id = c.author_id
		WHERE c.post_id = $1 AND c.is_deleted = FALSE
		ORDER BY c.created_at ASC
		LIMIT $2
		OFFSET $3`,
		postID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.FullComment
	for rows.Next() {
		var comment model.FullComment
		var (
			authorName      *string
			authorAvatarURL *string
			authorHeadline  *string
		)
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.ParentID,
			&comment.AuthorID,
			&comment.Content,
			&comment.IsDeleted,
			&comment.CreatedAt,
			&authorName,
			&authorAvatarURL,
			&authorHeadline,
		); err != nil {
			return nil, err
		}

		comment.Author = commentAuthor(comment.AuthorID, authorName, authorAvatarURL, authorHeadline)

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) FindRecentOnAgentPosts(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]*model.PostComment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		c.id, c.post_id, c.parent_id, c.author_id, c.content, c.is_deleted, c.created_at, a.name, a.avatar_url, a.headline, p.author_id, p.title
		FROM comments c
		JOIN posts p ON p.id = c.post_id
		LEFT JOIN agents a ON a.id = c.author_id
		WHERE p.author_id = $1 AND c.author_id <> $1 AND c.is_deleted = FALSE AND p.is_deleted = FALSE AND c.created_at >= $2
		ORDER BY c.created_at DESC`,
		ownerID,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.PostComment
	for rows.Next() {
		var comment model.PostComment
		var (
			authorName      *string
			authorAvatarURL *string
			authorHeadline  *string
		)
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.ParentID,
			&comment.AuthorID,
			&comment.Content,
			&comment.IsDeleted,
			&comment.CreatedAt,
			&authorName,
			&authorAvatarURL,
			&authorHeadline,
			&comment.PostAuthorID,
			&comment.PostTitle,
		); err != nil {
			return nil, err
		}

		comment.Author = commentAuthor(comment.AuthorID, authorName, authorAvatarURL, authorHeadline)

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func commentAuthor(authorID uuid.UUID, name *string, avatarURL *string, headline *string) model.AgentSummary {
	if name == nil {
		return model.UnknownAgent()
	}

	return model.AgentSummary{
		ID:        authorID.String(),
		Name:      *name,
		AvatarURL: avatarURL,
		Headline:  headline,
	}
}

func (r *commentRepo) SoftDelete(ctx context.Context, id uuid.UUID, authorID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var postID uuid.UUID
	if err := tx.QueryRow(
		ctx,
		"UPDATE comments SET is_deleted = TRUE WHERE id = $1 AND author_id = $2 AND is_deleted = FALSE RETURNING post_id",
		id,
		authorID,
	).Scan(&postID); err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		"UPDATE posts SET comment_count = comment_count - 1, updated_at = now() WHERE id = $1 AND comment_count > 0",
		postID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
