package auth_http

import (
	"fmt"
	"net/http"

	"postboard-service/internal/infrastructure/inbound/http/middleware"
	"postboard-service/internal/infrastructure/inbound/http/response"

	"github.com/gin-gonic/gin"
)

func Root(c *gin.Context) {
	response.Message(c, http.StatusOK, "Hello World")
}

func HealthChecker(c *gin.Context) {
	response.Message(c, http.StatusOK, "postboard-service is up and running")
}

func AuthenticatedRoute(c *gin.Context) {
	user, ok := middleware.CallerFromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	response.Message(c, http.StatusOK, fmt.Sprintf("Hello %s!", user.Email))
}
