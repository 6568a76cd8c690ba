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
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PostUpdater interface {
	UpdatePost(ctx context.Context, userID uuid.UUID, id int64, update *model.UpdatePostDTO) (*model.Post, error)
}

type UpdatePostHandler struct {
	postService PostUpdater
	validate    *validator.Validate
	log         ports.Logger
}

func NewUpdatePostHandler(postService PostUpdater, validate *validator.Validate, log ports.Logger) *UpdatePostHandler {
	return &UpdatePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type UpdatePostRequestInternal struct {
	PostID int64   `validate:"required,gt=0"`
	Text   *string `validate:"omitempty,max=555"`
}

func (h *UpdatePostHandler) UpdatePost(c *gin.Context) {
	user, ok := callerOrAbort(c)
	if !ok {
		return
	}

	validationReq := &UpdatePostRequestInternal{PostID: postIDParam(c)}
	if text, found := c.GetPostForm("text"); found && text != "" {
		validationReq.Text = &text
	}
	if err := h.validate.Struct(validationReq); err != nil {
		h.log.Debug("UpdatePost validation failed", slog.String("error", err.Error()))
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}

	updatedPost, err := h.postService.UpdatePost(c.Request.Context(), user.ID, validationReq.PostID, &model.UpdatePostDTO{
		Text: validationReq.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "Post not found!")
		case errors.Is(err, custom_errors.ErrForbidden):
			response.Error(c, http.StatusForbidden, "you are not the owner of this post")
		default:
			h.log.Error("Failed to update post", slog.Int64("post_id", validationReq.PostID), slog.String("error", err.Error()))
			response.Error(c, http.StatusInternalServerError, "failed to update post")
		}
		return
	}

	c.JSON(http.StatusOK, updatedPost)
}
