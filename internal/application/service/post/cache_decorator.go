package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	post_service "postboard-service/internal/domain/ports/input/post"
	output "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/domain/ports/output/cache"

	"github.com/google/uuid"
)

type PostServiceCacheDecorator struct {
	service   post_service.Service
	postCache cache.PostCache
	log       output.Logger
	metrics   output.MetricsProvider
}

func NewPostServiceCacheDecorator(
	service post_service.Service,
	postCache cache.PostCache,
	log output.Logger,
	metrics output.MetricsProvider,
) post_service.Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metrics,
	}
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	d.log.Debug("Creating post with cache decorator", slog.String("owner_id", post.OwnerID.String()))

	result, err := d.service.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	d.setPost(ctx, result)
	return result, nil
}

func (d *PostServiceCacheDecorator) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	d.log.Debug("Getting post by ID with cache decorator", slog.Int64("post_id", id))

	cacheStart := time.Now()
	cachedPost, err := d.postCache.GetPost(ctx, id)
	d.metrics.RecordCacheOperationDuration("post_get", time.Since(cacheStart))
	if err == nil {
		d.log.Debug("Post found in cache", slog.Int64("post_id", id))
		d.metrics.IncrementCacheHits()
		return cachedPost, nil
	}

	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Failed to get post from cache",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	} else {
		d.metrics.IncrementCacheMisses()
	}

	d.log.Debug("Post cache miss, fetching from service", slog.Int64("post_id", id))
	post, err := d.service.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.setPost(ctx, post)
	return post, nil
}

func (d *PostServiceCacheDecorator) ListUserPosts(ctx context.Context, ownerID uuid.UUID) ([]*model.Post, error) {
	return d.service.ListUserPosts(ctx, ownerID)
}

func (d *PostServiceCacheDecorator) ListAllPosts(ctx context.Context) ([]*model.Post, error) {
	return d.service.ListAllPosts(ctx)
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, userID uuid.UUID, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	d.log.Debug("Updating post with cache decorator",
		slog.Int64("post_id", id),
		slog.String("user_id", userID.String()))

	result, err := d.service.UpdatePost(ctx, userID, id, update)
	if err != nil {
		return nil, err
	}

	d.deletePost(ctx, id, "update")
	return result, nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, userID uuid.UUID, id int64) error {
	d.log.Debug("Deleting post with cache decorator",
		slog.Int64("post_id", id),
		slog.String("user_id", userID.String()))

	if err := d.service.DeletePost(ctx, userID, id); err != nil {
		return err
	}

	d.deletePost(ctx, id, "deletion")
	return nil
}

func (d *PostServiceCacheDecorator) LikePost(ctx context.Context, userID uuid.UUID, postID int64) (*model.LikeResult, error) {
	return d.service.LikePost(ctx, userID, postID)
}

func (d *PostServiceCacheDecorator) UnlikePost(ctx context.Context, userID uuid.UUID, postID int64) (*model.LikeResult, error) {
	return d.service.UnlikePost(ctx, userID, postID)
}

func (d *PostServiceCacheDecorator) setPost(ctx context.Context, post *model.Post) {
	start := time.Now()
	if err := d.postCache.SetPost(ctx, post); err != nil {
		d.log.Warn("Failed to cache post",
			slog.Int64("post_id", post.ID),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(start))
}

func (d *PostServiceCacheDecorator) deletePost(ctx context.Context, id int64, reason string) {
	start := time.Now()
	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache after "+reason,
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_delete", time.Since(start))
}
