package like_repository_postgres_test

import (
	"context"
	"testing"

	"postboard-service/internal/domain/custom_errors"
	"postboard-service/internal/infrastructure/logger"
	prometheus_metrics "postboard-service/internal/infrastructure/outbound/metrics/prometheus"
	like_repository_postgres "postboard-service/internal/infrastructure/outbound/repository/like/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// execDB answers every Exec with a fixed tag and error.
type execDB struct {
	tag pgconn.CommandTag
	err error
}

func (d *execDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return d.tag, d.err
}

func (d *execDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("unexpected Query")
}

func (d *execDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("unexpected QueryRow")
}

func TestLikeRepository_CreateErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		db      *execDB
		wantErr error
	}{
		{
			name: "Inserted",
			db:   &execDB{tag: pgconn.NewCommandTag("INSERT 0 1")},
		},
		{
			name:    "Conflict leaves the row untouched",
			db:      &execDB{tag: pgconn.NewCommandTag("INSERT 0 0")},
			wantErr: custom_errors.ErrAlreadyLiked,
		},
		{
			name:    "Missing post",
			db:      &execDB{err: &pgconn.PgError{Code: "23503", ConstraintName: "fk_user_likes_post"}},
			wantErr: custom_errors.ErrPostNotFound,
		},
		{
			name:    "Missing user",
			db:      &execDB{err: &pgconn.PgError{Code: "23503", ConstraintName: "fk_user_likes_user"}},
			wantErr: custom_errors.ErrUserNotFound,
		},
		{
			name:    "Other database error",
			db:      &execDB{err: &pgconn.PgError{Code: "57014"}},
			wantErr: custom_errors.ErrDatabaseQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := like_repository_postgres.NewLikeRepository(tt.db, logger.New("test"), prometheus_metrics.NewPrometheusMetricsProvider())

			err := repo.Create(context.Background(), uuid.New(), 42)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
