package memory

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"

	"github.com/google/uuid"
)

type UserRepository struct {
	log   ports.Logger
	store *Store
}

func NewUserRepository(store *Store, log ports.Logger) *UserRepository {
	return &UserRepository{log: log, store: store}
}

func (u *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, existing := range u.store.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, custom_errors.ErrUserAlreadyExists
		}
	}

	created := *user
	created.CreatedAt = u.store.now()
	u.store.users[created.ID] = &created

	u.log.Debug("Created user (memory impl)", slog.String("id", created.ID.String()))
	result := created
	return &result, nil
}

func (u *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	user, ok := u.store.users[id]
	if !ok {
		return nil, custom_errors.ErrUserNotFound
	}
	result := *user
	return &result, nil
}

func (u *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	for _, user := range u.store.users {
		if strings.EqualFold(user.Email, email) {
			result := *user
			return &result, nil
		}
	}
	return nil, custom_errors.ErrUserNotFound
}

func (u *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	user, ok := u.store.users[id]
	if !ok {
		return custom_errors.ErrUserNotFound
	}
	user.LastLogin = &at
	return nil
}

func (u *UserRepository) UpdateLastRequestTime(ctx context.Context, id uuid.UUID, at time.Time) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	user, ok := u.store.users[id]
	if !ok {
		return custom_errors.ErrUserNotFound
	}
	user.LastRequestTime = &at
	return nil
}

// Delete removes the user together with their posts and likes.
func (u *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if _, ok := u.store.users[id]; !ok {
		return custom_errors.ErrUserNotFound
	}
	delete(u.store.users, id)

	for postID, post := range u.store.posts {
		if post.OwnerID == id {
			u.store.deletePostLocked(postID)
		}
	}
	for key := range u.store.likes {
		if key.userID == id {
			delete(u.store.likes, key)
		}
	}
	return nil
}
