package postgres

import (
	"context"
	"fmt"
	"time"

	ports "postboard-service/internal/domain/ports/output"
	like_repository "postboard-service/internal/domain/ports/output/like"
	post_repository "postboard-service/internal/domain/ports/output/post"
	like_repository_postgres "postboard-service/internal/infrastructure/outbound/repository/like/postgres"
	post_repository_postgres "postboard-service/internal/infrastructure/outbound/repository/post/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUnitOfWork struct {
	pool    *pgxpool.Pool
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewPostgresUOW(pool *pgxpool.Pool, log ports.Logger, metrics ports.MetricsProvider) ports.UnitOfWork {
	return &PostgresUnitOfWork{pool: pool, log: log, metrics: metrics}
}

func (uow *PostgresUnitOfWork) Begin(ctx context.Context) (ports.Transaction, error) {
	start := time.Now()
	tx, err := uow.pool.Begin(ctx)
	uow.metrics.RecordDatabaseQueryDuration("tx_begin", time.Since(start))
	if err != nil {
		uow.metrics.IncrementDatabaseQueries("tx_begin", false)
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	uow.metrics.IncrementDatabaseQueries("tx_begin", true)
	return &PostgresTransaction{tx: tx, log: uow.log, metrics: uow.metrics}, nil
}

type PostgresTransaction struct {
	tx      pgx.Tx
	log     ports.Logger
	metrics ports.MetricsProvider
}

func (t *PostgresTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *PostgresTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *PostgresTransaction) PostRepository() post_repository.Repository {
	return post_repository_postgres.NewPostRepository(t.tx, t.log, t.metrics)
}

func (t *PostgresTransaction) LikeRepository() like_repository.Repository {
	return like_repository_postgres.NewLikeRepository(t.tx, t.log, t.metrics)
}
