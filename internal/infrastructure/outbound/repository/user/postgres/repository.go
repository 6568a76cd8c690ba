package user_repository_postgres

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

const userColumns = `id, email, username, hashed_password, is_active, is_superuser, is_verified, created_at, last_login, last_request_time`

type UserRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewUserRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *UserRepository {
	return &UserRepository{db: db, log: log, metrics: metrics}
}

func (u *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	start := time.Now()
	u.log.Debug("Creating new user", slog.String("id", user.ID.String()), slog.String("email", user.Email))

	args := pgx.NamedArgs{
		"id":              user.ID,
		"email":           user.Email,
		"username":        user.Username,
		"hashed_password": user.HashedPassword,
		"is_active":       user.IsActive,
		"is_superuser":    user.IsSuperuser,
		"is_verified":     user.IsVerified,
	}
	query := `
		INSERT INTO "user" (id, email, username, hashed_password, is_active, is_superuser, is_verified)
		VALUES (@id, @email, @username, @hashed_password, @is_active, @is_superuser, @is_verified)
		RETURNING ` + userColumns

	createdUser, err := scanUser(u.db.QueryRow(ctx, query, args))
	if err != nil {
		u.observe("user_create", start, false)
		if db.IsUniqueViolation(err) {
			u.log.Debug("User with email already exists", slog.String("email", user.Email))
			return nil, custom_errors.ErrUserAlreadyExists
		}
		u.log.Error("Error creating user", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	u.observe("user_create", start, true)
	u.log.Info("User created", slog.String("id", createdUser.ID.String()))
	return createdUser, nil
}

func (u *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + userColumns + ` FROM "user" WHERE id = @id`

	return u.get(ctx, "user_get_by_id", query, args, slog.String("id", id.String()))
}

func (u *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := pgx.NamedArgs{"email": email}
	query := `SELECT ` + userColumns + ` FROM "user" WHERE lower(email) = lower(@email)`

	return u.get(ctx, "user_get_by_email", query, args, slog.String("email", email))
}

func (u *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return u.touch(ctx, "user_update_last_login", `UPDATE "user" SET last_login = @at WHERE id = @id`, id, at)
}

func (u *UserRepository) UpdateLastRequestTime(ctx context.Context, id uuid.UUID, at time.Time) error {
	return u.touch(ctx, "user_update_last_request_time", `UPDATE "user" SET last_request_time = @at WHERE id = @id`, id, at)
}

// Delete removes the user; posts and likes go with it through ON DELETE CASCADE.
func (u *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	u.log.Debug("Deleting user", slog.String("id", id.String()))

	result, err := u.db.Exec(ctx, `DELETE FROM "user" WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		u.observe("user_delete", start, false)
		u.log.Error("Error deleting user", slog.String("id", id.String()), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		u.observe("user_delete", start, false)
		return custom_errors.ErrUserNotFound
	}

	u.observe("user_delete", start, true)
	return nil
}

func (u *UserRepository) get(ctx context.Context, queryType, query string, args pgx.NamedArgs, key slog.Attr) (*model.User, error) {
	start := time.Now()
	u.log.Debug("Getting user", key)

	user, err := scanUser(u.db.QueryRow(ctx, query, args))
	if err != nil {
		u.observe(queryType, start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			u.log.Debug("User not found", key)
			return nil, custom_errors.ErrUserNotFound
		}
		u.log.Error("Error getting user", key, slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	u.observe(queryType, start, true)
	return user, nil
}

func (u *UserRepository) touch(ctx context.Context, queryType, query string, id uuid.UUID, at time.Time) error {
	start := time.Now()

	result, err := u.db.Exec(ctx, query, pgx.NamedArgs{"id": id, "at": at})
	if err != nil {
		u.observe(queryType, start, false)
		u.log.Error("Error updating user timestamp",
			slog.String("query_type", queryType),
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		u.observe(queryType, start, false)
		return custom_errors.ErrUserNotFound
	}

	u.observe(queryType, start, true)
	return nil
}

func (u *UserRepository) observe(queryType string, start time.Time, success bool) {
	u.metrics.IncrementDatabaseQueries(queryType, success)
	u.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.HashedPassword,
		&user.IsActive,
		&user.IsSuperuser,
		&user.IsVerified,
		&user.CreatedAt,
		&user.LastLogin,
		&user.LastRequestTime,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
