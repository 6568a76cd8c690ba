package post_http

import (
	"net/http"
	"strconv"

	model "postboard-service/internal/domain/models"
	"postboard-service/internal/infrastructure/inbound/http/middleware"
	"postboard-service/internal/infrastructure/inbound/http/response"

	"github.com/gin-gonic/gin"
)

type PostIDRequestInternal struct {
	PostID int64 `validate:"required,gt=0"`
}

// postIDParam returns 0 for a malformed id so that validation rejects it.
func postIDParam(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func callerOrAbort(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return user, true
}
