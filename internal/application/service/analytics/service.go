package analytics_service

import (
	"context"
	"log/slog"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"
	like_repository "postboard-service/internal/domain/ports/output/like"
)

type AnalyticsService struct {
	likeRepo like_repository.Repository
	log      ports.Logger
	now      func() time.Time
}

type Option func(*AnalyticsService)

// WithClock sets the clock used to resolve a missing date_to.
func WithClock(now func() time.Time) Option {
	return func(s *AnalyticsService) {
		s.now = now
	}
}

func NewAnalyticsService(likeRepo like_repository.Repository, log ports.Logger, opts ...Option) *AnalyticsService {
	s := &AnalyticsService{
		likeRepo: likeRepo,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CountLikesByDay counts likes per calendar day between the start of dateFrom
// and the end of dateTo, both inclusive.
func (s *AnalyticsService) CountLikesByDay(ctx context.Context, dateFrom, dateTo string) (model.LikeAnalytics, error) {
	dateRange, err := s.parseRange(dateFrom, dateTo)
	if err != nil {
		s.log.Debug("Invalid analytics range",
			slog.String("date_from", dateFrom),
			slog.String("date_to", dateTo),
			slog.String("error", err.Error()))
		return nil, err
	}

	if dateRange.To.Before(dateRange.From) {
		return model.LikeAnalytics{}, nil
	}

	analytics, err := s.likeRepo.CountByDay(ctx, dateRange)
	if err != nil {
		s.log.Error("Failed to count likes by day", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return analytics, nil
}

func (s *AnalyticsService) parseRange(dateFrom, dateTo string) (model.DateRange, error) {
	if dateFrom == "" {
		return model.DateRange{}, custom_errors.NewInvalidInput("date_from", "date_from is required")
	}

	from, err := time.Parse(model.DateLayout, dateFrom)
	if err != nil {
		return model.DateRange{}, custom_errors.NewInvalidInput("date_from", "invalid date_from format, use YYYY-MM-DD")
	}

	var to time.Time
	if dateTo == "" {
		now := s.now().UTC()
		to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		to, err = time.Parse(model.DateLayout, dateTo)
		if err != nil {
			return model.DateRange{}, custom_errors.NewInvalidInput("date_to", "invalid date_to format, use YYYY-MM-DD")
		}
	}

	return model.DateRange{
		From: from,
		To:   to.Add(24*time.Hour - time.Microsecond),
	}, nil
}
