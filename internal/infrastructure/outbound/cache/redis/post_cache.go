package redis

import (
	"context"
	"strconv"
	"time"

	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"
)

const (
	postCacheKeyPrefix = "post:"
	postCacheTTL       = 30 * time.Minute
)

// PostCache holds single posts for GetPostByID. Like totals are never cached here.
type PostCache struct {
	cache keyedCache[model.Post]
}

func NewPostCache(client *Client, log ports.Logger) *PostCache {
	return &PostCache{cache: keyedCache[model.Post]{
		client: client,
		log:    log,
		entity: "post",
		prefix: postCacheKeyPrefix,
		ttl:    postCacheTTL,
	}}
}

func (p *PostCache) GetPost(ctx context.Context, postID int64) (*model.Post, error) {
	return p.cache.get(ctx, strconv.FormatInt(postID, 10))
}

func (p *PostCache) SetPost(ctx context.Context, post *model.Post) error {
	if post == nil {
		return p.cache.set(ctx, "", nil)
	}
	return p.cache.set(ctx, strconv.FormatInt(post.ID, 10), post)
}

func (p *PostCache) DeletePost(ctx context.Context, postID int64) error {
	return p.cache.delete(ctx, strconv.FormatInt(postID, 10))
}
