package post_repository

import (
	"context"

	model "postboard-service/internal/domain/models"

	"github.com/google/uuid"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/post --outpkg mocks --filename PostRepository.go
type Repository interface {
	Create(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Post, error)
	ListAll(ctx context.Context) ([]*model.Post, error)
	UpdateText(ctx context.Context, id int64, text string) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
}
