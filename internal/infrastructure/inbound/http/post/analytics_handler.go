package post_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/infrastructure/inbound/http/response"

	"github.com/gin-gonic/gin"
)

type LikeAnalyticsCounter interface {
	CountLikesByDay(ctx context.Context, dateFrom, dateTo string) (model.LikeAnalytics, error)
}

type AnalyticsHandler struct {
	analyticsService LikeAnalyticsCounter
	log              ports.Logger
}

func NewAnalyticsHandler(analyticsService LikeAnalyticsCounter, log ports.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		log:              log,
	}
}

func (h *AnalyticsHandler) CountLikesByDay(c *gin.Context) {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")

	analytics, err := h.analyticsService.CountLikesByDay(c.Request.Context(), dateFrom, dateTo)
	if err != nil {
		var invalid *custom_errors.InvalidInputError
		switch {
		case errors.As(err, &invalid):
			response.Error(c, http.StatusBadRequest, invalid.Message)
		case errors.Is(err, custom_errors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "invalid input")
		default:
			h.log.Error("Failed to count likes by day", slog.String("error", err.Error()))
			response.Error(c, http.StatusInternalServerError, "failed to count likes")
		}
		return
	}

	c.JSON(http.StatusOK, analytics)
}
