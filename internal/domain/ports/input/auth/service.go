package auth_service

import (
	"context"

	model "postboard-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/auth --outpkg mocks --filename AuthService.go
type Service interface {
	Register(ctx context.Context, dto *model.RegisterUserDTO) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.AccessToken, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
}
