package ports

import (
	"time"

	"github.com/google/uuid"
)

//go:generate mockery --name TokenManager --dir . --output ../../../../mocks/security --outpkg mocks --filename TokenManager.go
type TokenManager interface {
	Issue(userID uuid.UUID, now time.Time) (string, error)
	Parse(token string) (uuid.UUID, error)
}

//go:generate mockery --name PasswordHasher --dir . --output ../../../../mocks/security --outpkg mocks --filename PasswordHasher.go
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
