package redis

import (
	"context"
	"time"

	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"

	"github.com/google/uuid"
)

const (
	userCacheKeyPrefix = "user:"
	userCacheTTL       = 15 * time.Minute
)

// UserCache holds users resolved from bearer tokens. The password hash is not serialized.
type UserCache struct {
	cache keyedCache[model.User]
}

func NewUserCache(client *Client, log ports.Logger) *UserCache {
	return &UserCache{cache: keyedCache[model.User]{
		client: client,
		log:    log,
		entity: "user",
		prefix: userCacheKeyPrefix,
		ttl:    userCacheTTL,
	}}
}

func (u *UserCache) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return u.cache.get(ctx, userID.String())
}

func (u *UserCache) SetUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return u.cache.set(ctx, "", nil)
	}
	return u.cache.set(ctx, user.ID.String(), user)
}

func (u *UserCache) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return u.cache.delete(ctx, userID.String())
}
