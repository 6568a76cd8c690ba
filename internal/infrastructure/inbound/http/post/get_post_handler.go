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
)

type PostGetter interface {
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
}

type GetPostHandler struct {
	postService PostGetter
	validate    *validator.Validate
	log         ports.Logger
}

func NewGetPostHandler(postService PostGetter, validate *validator.Validate, log ports.Logger) *GetPostHandler {
	return &GetPostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

func (h *GetPostHandler) GetPost(c *gin.Context) {
	validationReq := &PostIDRequestInternal{PostID: postIDParam(c)}
	if err := h.validate.Struct(validationReq); err != nil {
		h.log.Debug("GetPost validation failed", slog.String("id", c.Param("id")))
		response.Error(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), validationReq.PostID)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "Post not found!")
		default:
			h.log.Error("Failed to get post", slog.Int64("post_id", validationReq.PostID), slog.String("error", err.Error()))
			response.Error(c, http.StatusInternalServerError, "failed to get post")
		}
		return
	}

	c.JSON(http.StatusOK, post)
}
