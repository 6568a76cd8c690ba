package http_server

import (
	analytics_service "postboard-service/internal/domain/ports/input/analytics"
	auth_service "postboard-service/internal/domain/ports/input/auth"
	post_service "postboard-service/internal/domain/ports/input/post"
	ports "postboard-service/internal/domain/ports/output"
	auth_http "postboard-service/internal/infrastructure/inbound/http/auth"
	"postboard-service/internal/infrastructure/inbound/http/middleware"
	post_http "postboard-service/internal/infrastructure/inbound/http/post"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Services struct {
	Posts     post_service.Service
	Analytics analytics_service.Service
	Auth      auth_service.Service
}

// NewRouter binds every route of the API. limiter may be nil to disable rate limiting on /auth.
func NewRouter(services Services, limiter *middleware.RateLimiter, log ports.Logger, metrics ports.MetricsProvider) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.AccessLogger(log),
		middleware.Metrics(metrics),
	)

	validate := validator.New()
	requireAuth := middleware.RequireAuth(services.Auth, log)

	router.GET("/", auth_http.Root)
	router.GET("/api/healthchecker", auth_http.HealthChecker)
	router.GET("/authenticated-route", requireAuth, auth_http.AuthenticatedRoute)

	authGroup := router.Group("/auth")
	if limiter != nil {
		authGroup.Use(limiter.Middleware())
	}
	registerHandler := auth_http.NewRegisterHandler(services.Auth, validate, log)
	loginHandler := auth_http.NewLoginHandler(services.Auth, validate, log)
	authGroup.POST("/register", registerHandler.Register)
	authGroup.POST("/jwt/login", loginHandler.Login)

	createHandler := post_http.NewCreatePostHandler(services.Posts, validate, log)
	getHandler := post_http.NewGetPostHandler(services.Posts, validate, log)
	listHandler := post_http.NewListPostsHandler(services.Posts, log)
	updateHandler := post_http.NewUpdatePostHandler(services.Posts, validate, log)
	deleteHandler := post_http.NewDeletePostHandler(services.Posts, validate, log)
	likeHandler := post_http.NewLikePostHandler(services.Posts, validate, log)
	analyticsHandler := post_http.NewAnalyticsHandler(services.Analytics, log)

	posts := router.Group("/api/post")
	posts.GET("/all", listHandler.ListAllPosts)

	authorized := posts.Group("", requireAuth)
	authorized.GET("/", listHandler.ListUserPosts)
	authorized.POST("/create", createHandler.CreatePost)
	authorized.GET("/analytics/", analyticsHandler.CountLikesByDay)
	authorized.GET("/:id", getHandler.GetPost)
	authorized.PATCH("/:id", updateHandler.UpdatePost)
	authorized.DELETE("/:id", deleteHandler.DeletePost)
	authorized.POST("/:id/like", likeHandler.LikePost)
	authorized.POST("/:id/unlike", likeHandler.UnlikePost)

	return router
}
