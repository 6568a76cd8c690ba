package cache

import (
	"context"

	model "postboard-service/internal/domain/models"

	"github.com/google/uuid"
)

//go:generate mockery --name UserCache --dir . --output ../../../../../mocks/cache --outpkg mocks --filename UserCache.go
type UserCache interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
