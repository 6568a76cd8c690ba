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

type PostCreator interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
}

type CreatePostHandler struct {
	postService PostCreator
	validate    *validator.Validate
	log         ports.Logger
}

func NewCreatePostHandler(postService PostCreator, validate *validator.Validate, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type CreatePostRequestInternal struct {
	Text string `validate:"required,max=555"`
}

func (h *CreatePostHandler) CreatePost(c *gin.Context) {
	user, ok := callerOrAbort(c)
	if !ok {
		return
	}

	validationReq := &CreatePostRequestInternal{
		Text: c.PostForm("text"),
	}
	if err := h.validate.Struct(validationReq); err != nil {
		h.log.Debug("CreatePost validation failed", slog.String("error", err.Error()))
		response.Error(c, http.StatusBadRequest, "text is required and must be at most 555 characters")
		return
	}

	createdPost, err := h.postService.CreatePost(c.Request.Context(), &model.CreatePostDTO{
		OwnerID: user.ID,
		Text:    validationReq.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
		default:
			h.log.Error("Failed to create post", slog.String("error", err.Error()))
			response.Error(c, http.StatusInternalServerError, "failed to create post")
		}
		return
	}

	h.log.Debug("Post created", slog.Int64("post_id", createdPost.ID))
	c.JSON(http.StatusCreated, createdPost)
}
