package auth_http

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

type UserRegistrar interface {
	Register(ctx context.Context, dto *model.RegisterUserDTO) (*model.User, error)
}

type RegisterHandler struct {
	authService UserRegistrar
	validate    *validator.Validate
	log         ports.Logger
}

func NewRegisterHandler(authService UserRegistrar, validate *validator.Validate, log ports.Logger) *RegisterHandler {
	return &RegisterHandler{
		authService: authService,
		validate:    validate,
		log:         log,
	}
}

type RegisterRequestInternal struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"required,max=50"`
}

func (h *RegisterHandler) Register(c *gin.Context) {
	var req RegisterRequestInternal
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("Register validation failed", slog.String("error", err.Error()))
		response.Error(c, http.StatusBadRequest, "email, password and username are required")
		return
	}
	if len(req.Password) > model.MaxPasswordBytes {
		response.Error(c, http.StatusBadRequest, "password must be at most 72 bytes")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &model.RegisterUserDTO{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		var invalid *custom_errors.InvalidInputError
		switch {
		case errors.Is(err, custom_errors.ErrUserAlreadyExists):
			response.Error(c, http.StatusBadRequest, "REGISTER_USER_ALREADY_EXISTS")
		case errors.As(err, &invalid):
			response.Error(c, http.StatusBadRequest, invalid.Message)
		default:
			h.log.Error("Failed to register user", slog.String("error", err.Error()))
			response.Error(c, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	h.log.Info("User registered", slog.String("user_id", user.ID.String()))
	c.JSON(http.StatusCreated, user)
}
