package auth_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/domain/ports/output/cache"
	user_repository "postboard-service/internal/domain/ports/output/user"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo  user_repository.Repository
	userCache cache.UserCache
	tokens    ports.TokenManager
	hasher    ports.PasswordHasher
	log       ports.Logger
	metrics   ports.MetricsProvider
	now       func() time.Time
}

func NewAuthService(
	userRepo user_repository.Repository,
	userCache cache.UserCache,
	tokens ports.TokenManager,
	hasher ports.PasswordHasher,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		userCache: userCache,
		tokens:    tokens,
		hasher:    hasher,
		log:       log,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, dto *model.RegisterUserDTO) (user *model.User, err error) {
	defer func() { s.metrics.IncrementAuthOperations("register", err == nil) }()

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		if errors.Is(err, custom_errors.ErrInvalidInput) {
			s.log.Debug("Password rejected by hasher", slog.String("error", err.Error()))
			return nil, err
		}
		s.log.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, &model.User{
		ID:             uuid.New(),
		Email:          normalizeEmail(dto.Email),
		Username:       dto.Username,
		HashedPassword: hash,
		IsActive:       true,
	})
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrUserAlreadyExists):
			s.log.Debug("User already exists", slog.String("email", dto.Email))
			return nil, custom_errors.ErrUserAlreadyExists
		default:
			s.log.Error("Failed to create user", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	s.log.Info("User registered", slog.String("user_id", created.ID.String()))
	return created, nil
}

// Login checks the credentials and issues a bearer token. Unknown email, wrong
// password and inactive account all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (token *model.AccessToken, err error) {
	defer func() { s.metrics.IncrementAuthOperations("login", err == nil) }()

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Login for unknown email", slog.String("email", email))
			return nil, custom_errors.ErrInvalidCredentials
		}
		s.log.Error("Failed to get user by email", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = s.hasher.Compare(user.HashedPassword, password); err != nil {
		s.log.Debug("Password mismatch", slog.String("user_id", user.ID.String()))
		return nil, custom_errors.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Debug("Login for inactive user", slog.String("user_id", user.ID.String()))
		return nil, custom_errors.ErrInvalidCredentials
	}

	now := s.now()
	if err = s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Error("Failed to update last login",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if cacheErr := s.userCache.DeleteUser(ctx, user.ID); cacheErr != nil {
		s.log.Warn("Failed to invalidate user cache after login",
			slog.String("user_id", user.ID.String()),
			slog.String("error", cacheErr.Error()))
	}

	accessToken, err := s.tokens.Issue(user.ID, now)
	if err != nil {
		s.log.Error("Failed to issue token", slog.String("error", err.Error()))
		return nil, err
	}

	return &model.AccessToken{AccessToken: accessToken, TokenType: model.TokenTypeBearer}, nil
}

// Authenticate resolves a bearer token to an active user and records the
// request time.
func (s *AuthService) Authenticate(ctx context.Context, token string) (user *model.User, err error) {
	defer func() { s.metrics.IncrementAuthOperations("authenticate", err == nil) }()

	if token == "" {
		return nil, custom_errors.ErrUnauthenticated
	}

	userID, err := s.tokens.Parse(token)
	if err != nil {
		s.log.Debug("Invalid bearer token", slog.String("error", err.Error()))
		return nil, custom_errors.ErrUnauthenticated
	}

	user, err = s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		s.log.Debug("Inactive user rejected", slog.String("user_id", userID.String()))
		return nil, custom_errors.ErrUnauthenticated
	}

	now := s.now()
	if err = s.userRepo.UpdateLastRequestTime(ctx, userID, now); err != nil {
		s.log.Warn("Failed to update last request time",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	} else {
		user.LastRequestTime = &now
	}

	return user, nil
}

func (s *AuthService) loadUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	cacheStart := time.Now()
	cached, err := s.userCache.GetUser(ctx, userID)
	s.metrics.RecordCacheOperationDuration("user_get", time.Since(cacheStart))
	if err == nil {
		s.metrics.IncrementCacheHits()
		return cached, nil
	}
	if errors.Is(err, custom_errors.ErrCacheMiss) {
		s.metrics.IncrementCacheMisses()
	} else {
		s.log.Warn("Failed to get user from cache",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Token subject not found", slog.String("user_id", userID.String()))
			return nil, custom_errors.ErrUnauthenticated
		}
		s.log.Error("Failed to get user", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	setStart := time.Now()
	if err := s.userCache.SetUser(ctx, user); err != nil {
		s.log.Warn("Failed to cache user",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}
	s.metrics.RecordCacheOperationDuration("user_set", time.Since(setStart))

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
