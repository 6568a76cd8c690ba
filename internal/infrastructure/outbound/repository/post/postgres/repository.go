package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/infrastructure/outbound/repository/postgres/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const postColumns = `id, owner_id, text, created_at, updated_at`

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func (p *PostRepository) Create(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.String("owner_id", post.OwnerID.String()))

	args := pgx.NamedArgs{
		"owner_id": post.OwnerID,
		"text":     post.Text,
	}
	query := `
		INSERT INTO posts (owner_id, text)
		VALUES (@owner_id, @text)
		RETURNING ` + postColumns

	createdPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_create", start, false)
		if db.IsForeignKeyViolation(err) {
			p.log.Debug("Post owner does not exist", slog.String("owner_id", post.OwnerID.String()))
			return nil, custom_errors.ErrUserNotFound
		}
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_create", start, true)
	p.log.Debug("Successfully created post", slog.Int64("id", createdPost.ID), slog.String("owner_id", createdPost.OwnerID.String()))
	return createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.Int64("id", id))

	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`

	post, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_get_by_id", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_get_by_id", start, true)
	return post, nil
}

func (p *PostRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Post, error) {
	p.log.Debug("Listing posts by owner", slog.String("owner_id", ownerID.String()))

	args := pgx.NamedArgs{"owner_id": ownerID}
	query := `SELECT ` + postColumns + ` FROM posts WHERE owner_id = @owner_id ORDER BY id`

	return p.list(ctx, "post_list_by_owner", query, args)
}

func (p *PostRepository) ListAll(ctx context.Context) ([]*model.Post, error) {
	p.log.Debug("Listing all posts")

	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC`

	return p.list(ctx, "post_list_all", query, pgx.NamedArgs{})
}

func (p *PostRepository) UpdateText(ctx context.Context, id int64, text string) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post text", slog.Int64("id", id))

	args := pgx.NamedArgs{"id": id, "text": text}
	query := `
		UPDATE posts SET text = @text, updated_at = now()
		WHERE id = @id
		RETURNING ` + postColumns

	updatedPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_update", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id during Update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_update", start, true)
	p.log.Debug("Successfully updated post", slog.Int64("id", updatedPost.ID))
	return updatedPost, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	p.log.Debug("Deleting post", slog.Int64("id", id))

	args := pgx.NamedArgs{"id": id}
	result, err := p.db.Exec(ctx, `DELETE FROM posts WHERE id = @id`, args)
	if err != nil {
		p.observe("post_delete", start, false)
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		p.observe("post_delete", start, false)
		p.log.Debug("Post not found during deletion", slog.Int64("id", id))
		return custom_errors.ErrPostNotFound
	}

	p.observe("post_delete", start, true)
	p.log.Debug("Successfully deleted post", slog.Int64("id", id))
	return nil
}

func (p *PostRepository) list(ctx context.Context, queryType, query string, args pgx.NamedArgs) ([]*model.Post, error) {
	start := time.Now()

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.observe(queryType, start, false)
		p.log.Error("Error listing posts", slog.String("query_type", queryType), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			p.observe(queryType, start, false)
			p.log.Error("Error scanning post", slog.String("query_type", queryType), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		p.observe(queryType, start, false)
		p.log.Error("Error iterating post rows", slog.String("query_type", queryType), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe(queryType, start, true)
	p.log.Debug("Retrieved posts", slog.String("query_type", queryType), slog.Int("count", len(posts)))
	return posts, nil
}

func (p *PostRepository) observe(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID,
		&post.OwnerID,
		&post.Text,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
