package memory

import (
	"context"
	"log/slog"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"

	"github.com/google/uuid"
)

type LikeRepository struct {
	log   ports.Logger
	store *Store
}

func NewLikeRepository(store *Store, log ports.Logger) *LikeRepository {
	return &LikeRepository{log: log, store: store}
}

func (l *LikeRepository) Create(ctx context.Context, userID uuid.UUID, postID int64) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	if _, ok := l.store.posts[postID]; !ok {
		return custom_errors.ErrPostNotFound
	}
	if _, ok := l.store.users[userID]; !ok {
		return custom_errors.ErrUserNotFound
	}

	key := likeKey{userID: userID, postID: postID}
	if _, ok := l.store.likes[key]; ok {
		l.log.Debug("Like already exists (memory impl)", slog.Int64("post_id", postID))
		return custom_errors.ErrAlreadyLiked
	}
	l.store.likes[key] = l.store.now()
	return nil
}

func (l *LikeRepository) Delete(ctx context.Context, userID uuid.UUID, postID int64) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	key := likeKey{userID: userID, postID: postID}
	if _, ok := l.store.likes[key]; !ok {
		return custom_errors.ErrNotLiked
	}
	delete(l.store.likes, key)
	return nil
}

func (l *LikeRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()

	var total int64
	for key := range l.store.likes {
		if key.postID == postID {
			total++
		}
	}
	return total, nil
}

func (l *LikeRepository) CountByDay(ctx context.Context, dateRange model.DateRange) (model.LikeAnalytics, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()

	analytics := make(model.LikeAnalytics)
	for _, createdAt := range l.store.likes {
		if inRange(createdAt, dateRange) {
			analytics[createdAt.Format(model.DateLayout)]++
		}
	}
	return analytics, nil
}

func inRange(at time.Time, dateRange model.DateRange) bool {
	return !at.Before(dateRange.From) && !at.After(dateRange.To)
}
