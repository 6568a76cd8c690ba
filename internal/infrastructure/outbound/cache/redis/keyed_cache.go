package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"postboard-service/internal/domain/custom_errors"
	ports "postboard-service/internal/domain/ports/output"
)

// keyedCache stores JSON values of T under "<prefix><id>" with a fixed TTL.
type keyedCache[T any] struct {
	client *Client
	log    ports.Logger
	entity string
	prefix string
	ttl    time.Duration
}

func (k *keyedCache[T]) get(ctx context.Context, id string) (*T, error) {
	var value T
	if err := k.client.Get(ctx, k.prefix+id, &value); err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, custom_errors.ErrCacheMiss
		}
		k.log.Error("Failed to read "+k.entity+" from cache",
			slog.String(k.entity+"_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get %s from cache: %w", k.entity, err)
	}
	return &value, nil
}

func (k *keyedCache[T]) set(ctx context.Context, id string, value *T) error {
	if value == nil {
		return fmt.Errorf("%s cannot be nil", k.entity)
	}
	if err := k.client.Set(ctx, k.prefix+id, value, k.ttl); err != nil {
		return fmt.Errorf("failed to set %s cache: %w", k.entity, err)
	}
	return nil
}

func (k *keyedCache[T]) delete(ctx context.Context, id string) error {
	if err := k.client.Delete(ctx, k.prefix+id); err != nil {
		return fmt.Errorf("failed to delete %s from cache: %w", k.entity, err)
	}
	return nil
}
