package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/infrastructure/inbound/http/response"

	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type callerKey struct{}

func WithCaller(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, callerKey{}, user)
}

// CallerFromContext returns the user resolved by RequireAuth.
func CallerFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(callerKey{}).(*model.User)
	return user, ok && user != nil
}

func RequireAuth(auth Authenticator, log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, custom_errors.ErrUnauthenticated) {
				response.Error(c, http.StatusUnauthorized, "Unauthorized")
				return
			}
			log.Error("Failed to authenticate request", slog.String("error", err.Error()))
			response.Error(c, http.StatusInternalServerError, "internal server error")
			return
		}

		c.Request = c.Request.WithContext(WithCaller(c.Request.Context(), user))
		c.Next()
	}
}
