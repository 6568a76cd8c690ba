package like_repository

import (
	"context"

	model "postboard-service/internal/domain/models"

	"github.com/google/uuid"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/like --outpkg mocks --filename LikeRepository.go
type Repository interface {
	// Create inserts the (user, post) pair and fails with ErrAlreadyLiked when it exists.
	Create(ctx context.Context, userID uuid.UUID, postID int64) error
	// Delete removes the pair and fails with ErrNotLiked when it is absent.
	Delete(ctx context.Context, userID uuid.UUID, postID int64) error
	CountByPost(ctx context.Context, postID int64) (int64, error)
	CountByDay(ctx context.Context, dateRange model.DateRange) (model.LikeAnalytics, error)
}
