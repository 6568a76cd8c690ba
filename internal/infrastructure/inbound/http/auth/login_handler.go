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

type LoginService interface {
	Login(ctx context.Context, email, password string) (*model.AccessToken, error)
}

type LoginHandler struct {
	authService LoginService
	validate    *validator.Validate
	log         ports.Logger
}

func NewLoginHandler(authService LoginService, validate *validator.Validate, log ports.Logger) *LoginHandler {
	return &LoginHandler{
		authService: authService,
		validate:    validate,
		log:         log,
	}
}

// LoginRequestInternal mirrors the OAuth2 password form, where username carries the email.
type LoginRequestInternal struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (h *LoginHandler) Login(c *gin.Context) {
	validationReq := &LoginRequestInternal{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}
	if err := h.validate.Struct(validationReq); err != nil {
		response.Error(c, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), validationReq.Username, validationReq.Password)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrInvalidCredentials):
			response.Error(c, http.StatusBadRequest, "LOGIN_BAD_CREDENTIALS")
		default:
			h.log.Error("Failed to login", slog.String("error", err.Error()))
			response.Error(c, http.StatusInternalServerError, "failed to login")
		}
		return
	}

	c.JSON(http.StatusOK, token)
}
