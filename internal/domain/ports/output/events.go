package ports

import "context"

//go:generate mockery --name EventPublisher --dir . --output ../../../../mocks/events --outpkg mocks --filename EventPublisher.go
type EventPublisher interface {
	Publish(ctx context.Context, subject string, event any) error
}
