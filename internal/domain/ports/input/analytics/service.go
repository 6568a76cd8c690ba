package analytics_service

import (
	"context"

	model "postboard-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/analytics --outpkg mocks --filename AnalyticsService.go
type Service interface {
	// CountLikesByDay takes raw YYYY-MM-DD strings; an empty dateTo means today.
	CountLikesByDay(ctx context.Context, dateFrom, dateTo string) (model.LikeAnalytics, error)
}
