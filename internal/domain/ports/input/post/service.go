package post_service

import (
	"context"

	model "postboard-service/internal/domain/models"

	"github.com/google/uuid"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/post --outpkg mocks --filename PostService.go
type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	ListUserPosts(ctx context.Context, ownerID uuid.UUID) ([]*model.Post, error)
	ListAllPosts(ctx context.Context) ([]*model.Post, error)
	UpdatePost(ctx context.Context, userID uuid.UUID, id int64, update *model.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, userID uuid.UUID, id int64) error
	LikePost(ctx context.Context, userID uuid.UUID, postID int64) (*model.LikeResult, error)
	UnlikePost(ctx context.Context, userID uuid.UUID, postID int64) (*model.LikeResult, error)
}
