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

type PostLiker interface {
	LikePost(ctx context.Context, userID uuid.UUID, postID int64) (*model.LikeResult, error)
	UnlikePost(ctx context.Context, userID uuid.UUID, postID int64) (*model.LikeResult, error)
}

type LikePostHandler struct {
	postService PostLiker
	validate    *validator.Validate
	log         ports.Logger
}

func NewLikePostHandler(postService PostLiker, validate *validator.Validate, log ports.Logger) *LikePostHandler {
	return &LikePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

func (h *LikePostHandler) LikePost(c *gin.Context) {
	h.handle(c, "like", h.postService.LikePost, "Post liked successfully")
}

func (h *LikePostHandler) UnlikePost(c *gin.Context) {
	h.handle(c, "unlike", h.postService.UnlikePost, "Post unliked successfully")
}

type likeFunc func(ctx context.Context, userID uuid.UUID, postID int64) (*model.LikeResult, error)

func (h *LikePostHandler) handle(c *gin.Context, operation string, call likeFunc, successMessage string) {
	user, ok := callerOrAbort(c)
	if !ok {
		return
	}

	validationReq := &PostIDRequestInternal{PostID: postIDParam(c)}
	if err := h.validate.Struct(validationReq); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid post id")
		return
	}

	result, err := call(c.Request.Context(), user.ID, validationReq.PostID)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "Post not found!")
		case errors.Is(err, custom_errors.ErrAlreadyLiked):
			response.Error(c, http.StatusBadRequest, "You have already liked this post")
		case errors.Is(err, custom_errors.ErrNotLiked):
			response.Error(c, http.StatusBadRequest, "You have not liked this post")
		case errors.Is(err, custom_errors.ErrUserNotFound):
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
		default:
			h.log.Error("Failed to "+operation+" post",
				slog.Int64("post_id", validationReq.PostID),
				slog.String("error", err.Error()))
			response.Error(c, http.StatusInternalServerError, "failed to "+operation+" post")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     successMessage,
		"total_likes": result.TotalLikes,
	})
}
