package like_repository_postgres

import (
	"context"
	"log/slog"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/infrastructure/outbound/repository/postgres/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// userForeignKey names the user_likes.user_id constraint from the migrations.
const userForeignKey = "fk_user_likes_user"

type LikeRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewLikeRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *LikeRepository {
	return &LikeRepository{db: db, log: log, metrics: metrics}
}

func (l *LikeRepository) Create(ctx context.Context, userID uuid.UUID, postID int64) error {
	start := time.Now()
	l.log.Debug("Creating like", slog.String("user_id", userID.String()), slog.Int64("post_id", postID))

	args := pgx.NamedArgs{"user_id": userID, "post_id": postID}
	query := `
		INSERT INTO user_likes (user_id, post_id)
		VALUES (@user_id, @post_id)
		ON CONFLICT (user_id, post_id) DO NOTHING`

	result, err := l.db.Exec(ctx, query, args)
	if err != nil {
		l.observe("like_create", start, false)
		if db.IsForeignKeyViolation(err) {
			return l.missingReference(err, userID, postID)
		}
		l.log.Error("Error creating like", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		l.observe("like_create", start, false)
		l.log.Debug("Like already exists", slog.String("user_id", userID.String()), slog.Int64("post_id", postID))
		return custom_errors.ErrAlreadyLiked
	}

	l.observe("like_create", start, true)
	return nil
}

func (l *LikeRepository) Delete(ctx context.Context, userID uuid.UUID, postID int64) error {
	start := time.Now()
	l.log.Debug("Deleting like", slog.String("user_id", userID.String()), slog.Int64("post_id", postID))

	args := pgx.NamedArgs{"user_id": userID, "post_id": postID}
	query := `DELETE FROM user_likes WHERE user_id = @user_id AND post_id = @post_id`

	result, err := l.db.Exec(ctx, query, args)
	if err != nil {
		l.observe("like_delete", start, false)
		l.log.Error("Error deleting like", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		l.observe("like_delete", start, false)
		l.log.Debug("Like not found during deletion", slog.String("user_id", userID.String()), slog.Int64("post_id", postID))
		return custom_errors.ErrNotLiked
	}

	l.observe("like_delete", start, true)
	return nil
}

func (l *LikeRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	start := time.Now()

	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT count(*) FROM user_likes WHERE post_id = @post_id`

	var total int64
	if err := l.db.QueryRow(ctx, query, args).Scan(&total); err != nil {
		l.observe("like_count_by_post", start, false)
		l.log.Error("Error counting likes", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}

	l.observe("like_count_by_post", start, true)
	return total, nil
}

// CountByDay groups like rows by the date part of created_at as stored.
func (l *LikeRepository) CountByDay(ctx context.Context, dateRange model.DateRange) (model.LikeAnalytics, error) {
	start := time.Now()
	l.log.Debug("Counting likes by day",
		slog.Time("from", dateRange.From),
		slog.Time("to", dateRange.To))

	args := pgx.NamedArgs{
		"from": pgtype.Timestamp{Time: dateRange.From, Valid: true},
		"to":   pgtype.Timestamp{Time: dateRange.To, Valid: true},
	}
	query := `
		SELECT date(created_at) AS day, count(*) AS total
		FROM user_likes
		WHERE created_at BETWEEN @from AND @to
		GROUP BY date(created_at)
		ORDER BY day`

	rows, err := l.db.Query(ctx, query, args)
	if err != nil {
		l.observe("like_count_by_day", start, false)
		l.log.Error("Error counting likes by day", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	analytics := make(model.LikeAnalytics)
	for rows.Next() {
		var (
			day   pgtype.Date
			total int64
		)
		if err := rows.Scan(&day, &total); err != nil {
			l.observe("like_count_by_day", start, false)
			l.log.Error("Error scanning like analytics row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		analytics[day.Time.Format(model.DateLayout)] = total
	}

	if err = rows.Err(); err != nil {
		l.observe("like_count_by_day", start, false)
		l.log.Error("Error iterating like analytics rows", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	l.observe("like_count_by_day", start, true)
	l.log.Debug("Counted likes by day", slog.Int("days", len(analytics)))
	return analytics, nil
}

func (l *LikeRepository) observe(queryType string, start time.Time, success bool) {
	l.metrics.IncrementDatabaseQueries(queryType, success)
	l.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (l *LikeRepository) missingReference(err error, userID uuid.UUID, postID int64) error {
	constraint := db.ViolatedConstraint(err)
	l.log.Debug("Like references a missing row",
		slog.String("constraint", constraint),
		slog.String("user_id", userID.String()),
		slog.Int64("post_id", postID))
	if constraint == userForeignKey {
		return custom_errors.ErrUserNotFound
	}
	return custom_errors.ErrPostNotFound
}
