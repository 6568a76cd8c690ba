package redis_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	"postboard-service/internal/infrastructure/config"
	"postboard-service/internal/infrastructure/logger"
	"postboard-service/internal/infrastructure/outbound/cache/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := redis.NewClient(config.Redis{Address: mr.Host(), Port: port, PoolSize: 2}, logger.New("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestPostCache(t *testing.T) {
	mr, client := setupRedis(t)
	cache := redis.NewPostCache(client, logger.New("test"))
	ctx := context.Background()

	_, err := cache.GetPost(ctx, 1)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)

	text := "hello"
	post := &model.Post{ID: 1, OwnerID: uuid.New(), Text: &text, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, cache.SetPost(ctx, post))
	assert.True(t, mr.Exists("post:1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("post:1"))

	got, err := cache.GetPost(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, post.OwnerID, got.OwnerID)
	assert.Equal(t, "hello", *got.Text)
	assert.Nil(t, got.UpdatedAt)

	require.NoError(t, cache.DeletePost(ctx, 1))
	_, err = cache.GetPost(ctx, 1)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)

	assert.Error(t, cache.SetPost(ctx, nil))
}

func TestUserCache(t *testing.T) {
	mr, client := setupRedis(t)
	cache := redis.NewUserCache(client, logger.New("test"))
	ctx := context.Background()
	user := &model.User{ID: uuid.New(), Email: "jane@example.com", HashedPassword: "hash", IsActive: true}

	require.NoError(t, cache.SetUser(ctx, user))
	assert.Equal(t, 15*time.Minute, mr.TTL("user:"+user.ID.String()))

	got, err := cache.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.True(t, got.IsActive)
	assert.Empty(t, got.HashedPassword)

	require.NoError(t, cache.DeleteUser(ctx, user.ID))
	_, err = cache.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
}

func TestClient_ConnectionFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	host := mr.Host()
	mr.Close()

	client, err := redis.NewClient(config.Redis{Address: host, Port: port}, logger.New("test"))
	assert.Error(t, err)
	assert.Nil(t, client)
}
