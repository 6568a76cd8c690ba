package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"
	"postboard-service/internal/infrastructure/inbound/http/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostLister interface {
	ListUserPosts(ctx context.Context, ownerID uuid.UUID) ([]*model.Post, error)
	ListAllPosts(ctx context.Context) ([]*model.Post, error)
}

type ListPostsHandler struct {
	postService PostLister
	log         ports.Logger
}

func NewListPostsHandler(postService PostLister, log ports.Logger) *ListPostsHandler {
	return &ListPostsHandler{
		postService: postService,
		log:         log,
	}
}

// ListUserPosts returns the caller's posts in insertion order.
func (h *ListPostsHandler) ListUserPosts(c *gin.Context) {
	user, ok := callerOrAbort(c)
	if !ok {
		return
	}

	posts, err := h.postService.ListUserPosts(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to list user posts", slog.String("user_id", user.ID.String()), slog.String("error", err.Error()))
		response.Error(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// ListAllPosts returns every post, newest first.
func (h *ListPostsHandler) ListAllPosts(c *gin.Context) {
	posts, err := h.postService.ListAllPosts(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list posts", slog.String("error", err.Error()))
		response.Error(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	c.JSON(http.StatusOK, posts)
}
