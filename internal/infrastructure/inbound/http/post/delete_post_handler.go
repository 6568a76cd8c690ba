package post_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"postboard-service/internal/domain/custom_errors"
	ports "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/infrastructure/inbound/http/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, userID uuid.UUID, id int64) error
}

type DeletePostHandler struct {
	postService PostDeleter
	validate    *validator.Validate
	log         ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, validate *validator.Validate, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

func (h *DeletePostHandler) DeletePost(c *gin.Context) {
	user, ok := callerOrAbort(c)
	if !ok {
		return
	}

	validationReq := &PostIDRequestInternal{PostID: postIDParam(c)}
	if err := h.validate.Struct(validationReq); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid post id")
		return
	}

	err := h.postService.DeletePost(c.Request.Context(), user.ID, validationReq.PostID)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "Post not found!")
		case errors.Is(err, custom_errors.ErrForbidden):
			response.Error(c, http.StatusForbidden, "you are not the owner of this post")
		default:
			h.log.Error("Failed to delete post", slog.Int64("post_id", validationReq.PostID), slog.String("error", err.Error()))
			response.Error(c, http.StatusInternalServerError, "failed to delete post")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
