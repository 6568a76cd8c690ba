package post_http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	"postboard-service/internal/infrastructure/inbound/http/middleware"
	post_http "postboard-service/internal/infrastructure/inbound/http/post"
	"postboard-service/internal/infrastructure/logger"
	analytics_mocks "postboard-service/mocks/analytics"
	post_mocks "postboard-service/mocks/post"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var caller = &model.User{
	ID:       uuid.MustParse("5b0f8a3e-3c1e-4d7a-9b2f-0d6f1f1a2b3c"),
	Email:    "alice@example.com",
	Username: "alice",
	IsActive: true,
}

func strPtr(s string) *string { return &s }

// withCaller stands in for RequireAuth.
func withCaller(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Request = c.Request.WithContext(middleware.WithCaller(c.Request.Context(), user))
		}
		c.Next()
	}
}

func newEngine(user *model.User) *gin.Engine {
	engine := gin.New()
	engine.Use(withCaller(user))
	return engine
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreatePostHandler(t *testing.T) {
	created := &model.Post{ID: 1, OwnerID: caller.ID, Text: strPtr("hello"), CreatedAt: time.Now().UTC()}

	tests := []struct {
		name       string
		user       *model.User
		text       string
		mockSetup  func(s *post_mocks.Service)
		wantStatus int
		wantError  string
	}{
		{
			name: "created",
			user: caller,
			text: "hello",
			mockSetup: func(s *post_mocks.Service) {
				s.On("CreatePost", mock.Anything, &model.CreatePostDTO{OwnerID: caller.ID, Text: "hello"}).
					Return(created, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing text",
			user:       caller,
			text:       "",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "text too long",
			user:       caller,
			text:       strings.Repeat("a", 556),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no caller",
			user:       nil,
			text:       "hello",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
		{
			name: "service failure",
			user: caller,
			text: "hello",
			mockSetup: func(s *post_mocks.Service) {
				s.On("CreatePost", mock.Anything, mock.Anything).Return(nil, custom_errors.ErrDatabaseQuery)
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "failed to create post",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := post_mocks.NewService(t)
			if tt.mockSetup != nil {
				tt.mockSetup(service)
			}
			handler := post_http.NewCreatePostHandler(service, validator.New(), logger.New("test"))

			engine := newEngine(tt.user)
			engine.POST("/api/post/create", handler.CreatePost)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, formRequest(http.MethodPost, "/api/post/create", url.Values{"text": {tt.text}}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				var post model.Post
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
				assert.Equal(t, created.ID, post.ID)
				assert.Equal(t, caller.ID, post.OwnerID)
				assert.Equal(t, "hello", *post.Text)
				assert.Nil(t, post.UpdatedAt)
			}
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeBody(t, rec)["error"])
			}
		})
	}
}

func TestGetPostHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		mockSetup  func(s *post_mocks.Service)
		wantStatus int
		wantError  string
	}{
		{
			name: "found",
			path: "/api/post/7",
			mockSetup: func(s *post_mocks.Service) {
				s.On("GetPostByID", mock.Anything, int64(7)).
					Return(&model.Post{ID: 7, OwnerID: caller.ID, Text: strPtr("hi")}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/api/post/8",
			mockSetup: func(s *post_mocks.Service) {
				s.On("GetPostByID", mock.Anything, int64(8)).Return(nil, custom_errors.ErrPostNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantError:  "Post not found!",
		},
		{
			name:       "malformed id",
			path:       "/api/post/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-positive id",
			path:       "/api/post/0",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unexpected failure",
			path: "/api/post/9",
			mockSetup: func(s *post_mocks.Service) {
				s.On("GetPostByID", mock.Anything, int64(9)).Return(nil, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := post_mocks.NewService(t)
			if tt.mockSetup != nil {
				tt.mockSetup(service)
			}
			handler := post_http.NewGetPostHandler(service, validator.New(), logger.New("test"))

			engine := newEngine(caller)
			engine.GET("/api/post/:id", handler.GetPost)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeBody(t, rec)["error"])
			}
		})
	}
}

func TestListPostsHandler(t *testing.T) {
	posts := []*model.Post{
		{ID: 1, OwnerID: caller.ID, Text: strPtr("first")},
		{ID: 2, OwnerID: caller.ID, Text: strPtr("second")},
	}

	t.Run("caller posts", func(t *testing.T) {
		service := post_mocks.NewService(t)
		service.On("ListUserPosts", mock.Anything, caller.ID).Return(posts, nil)
		handler := post_http.NewListPostsHandler(service, logger.New("test"))

		engine := newEngine(caller)
		engine.GET("/api/post/", handler.ListUserPosts)

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/post/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got []model.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
	})

	t.Run("all posts", func(t *testing.T) {
		service := post_mocks.NewService(t)
		service.On("ListAllPosts", mock.Anything).Return([]*model.Post{}, nil)
		handler := post_http.NewListPostsHandler(service, logger.New("test"))

		engine := newEngine(nil)
		engine.GET("/api/post/all", handler.ListAllPosts)

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/post/all", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("list failure", func(t *testing.T) {
		service := post_mocks.NewService(t)
		service.On("ListAllPosts", mock.Anything).Return(nil, custom_errors.ErrDatabaseQuery)
		handler := post_http.NewListPostsHandler(service, logger.New("test"))

		engine := newEngine(nil)
		engine.GET("/api/post/all", handler.ListAllPosts)

		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/post/all", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestUpdatePostHandler(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		mockSetup  func(s *post_mocks.Service)
		wantStatus int
		wantError  string
	}{
		{
			name: "text replaced",
			form: url.Values{"text": {"edited"}},
			mockSetup: func(s *post_mocks.Service) {
				s.On("UpdatePost", mock.Anything, caller.ID, int64(3), &model.UpdatePostDTO{Text: strPtr("edited")}).
					Return(&model.Post{ID: 3, OwnerID: caller.ID, Text: strPtr("edited")}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing text leaves post untouched",
			form: url.Values{},
			mockSetup: func(s *post_mocks.Service) {
				s.On("UpdatePost", mock.Anything, caller.ID, int64(3), &model.UpdatePostDTO{}).
					Return(&model.Post{ID: 3, OwnerID: caller.ID, Text: strPtr("original")}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not the owner",
			form: url.Values{"text": {"edited"}},
			mockSetup: func(s *post_mocks.Service) {
				s.On("UpdatePost", mock.Anything, caller.ID, int64(3), mock.Anything).Return(nil, custom_errors.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "post missing",
			form: url.Values{"text": {"edited"}},
			mockSetup: func(s *post_mocks.Service) {
				s.On("UpdatePost", mock.Anything, caller.ID, int64(3), mock.Anything).Return(nil, custom_errors.ErrPostNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantError:  "Post not found!",
		},
		{
			name:       "text too long",
			form:       url.Values{"text": {strings.Repeat("b", 600)}},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := post_mocks.NewService(t)
			if tt.mockSetup != nil {
				tt.mockSetup(service)
			}
			handler := post_http.NewUpdatePostHandler(service, validator.New(), logger.New("test"))

			engine := newEngine(caller)
			engine.PATCH("/api/post/:id", handler.UpdatePost)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, formRequest(http.MethodPatch, "/api/post/3", tt.form))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeBody(t, rec)["error"])
			}
		})
	}
}

func TestDeletePostHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", err: nil, wantStatus: http.StatusNoContent},
		{name: "not found", err: custom_errors.ErrPostNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: custom_errors.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "failure", err: custom_errors.ErrDatabaseQuery, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := post_mocks.NewService(t)
			service.On("DeletePost", mock.Anything, caller.ID, int64(4)).Return(tt.err)
			handler := post_http.NewDeletePostHandler(service, validator.New(), logger.New("test"))

			engine := newEngine(caller)
			engine.DELETE("/api/post/:id", handler.DeletePost)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/post/4", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestLikePostHandler(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		mockSetup   func(s *post_mocks.Service)
		wantStatus  int
		wantMessage string
		wantTotal   float64
		wantError   string
	}{
		{
			name: "liked",
			path: "/api/post/5/like",
			mockSetup: func(s *post_mocks.Service) {
				s.On("LikePost", mock.Anything, caller.ID, int64(5)).Return(&model.LikeResult{PostID: 5, TotalLikes: 1}, nil)
			},
			wantStatus:  http.StatusOK,
			wantMessage: "Post liked successfully",
			wantTotal:   1,
		},
		{
			name: "already liked",
			path: "/api/post/5/like",
			mockSetup: func(s *post_mocks.Service) {
				s.On("LikePost", mock.Anything, caller.ID, int64(5)).Return(nil, custom_errors.ErrAlreadyLiked)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "You have already liked this post",
		},
		{
			name: "like missing post",
			path: "/api/post/5/like",
			mockSetup: func(s *post_mocks.Service) {
				s.On("LikePost", mock.Anything, caller.ID, int64(5)).Return(nil, custom_errors.ErrPostNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantError:  "Post not found!",
		},
		{
			name: "unliked",
			path: "/api/post/5/unlike",
			mockSetup: func(s *post_mocks.Service) {
				s.On("UnlikePost", mock.Anything, caller.ID, int64(5)).Return(&model.LikeResult{PostID: 5, TotalLikes: 0}, nil)
			},
			wantStatus:  http.StatusOK,
			wantMessage: "Post unliked successfully",
			wantTotal:   0,
		},
		{
			name: "not liked",
			path: "/api/post/5/unlike",
			mockSetup: func(s *post_mocks.Service) {
				s.On("UnlikePost", mock.Anything, caller.ID, int64(5)).Return(nil, custom_errors.ErrNotLiked)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "You have not liked this post",
		},
		{
			name: "caller deleted meanwhile",
			path: "/api/post/5/like",
			mockSetup: func(s *post_mocks.Service) {
				s.On("LikePost", mock.Anything, caller.ID, int64(5)).Return(nil, custom_errors.ErrUserNotFound)
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
		{
			name:       "invalid id",
			path:       "/api/post/-1/like",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := post_mocks.NewService(t)
			if tt.mockSetup != nil {
				tt.mockSetup(service)
			}
			handler := post_http.NewLikePostHandler(service, validator.New(), logger.New("test"))

			engine := newEngine(caller)
			engine.POST("/api/post/:id/like", handler.LikePost)
			engine.POST("/api/post/:id/unlike", handler.UnlikePost)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["message"])
				assert.Equal(t, tt.wantTotal, body["total_likes"])
			}
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestAnalyticsHandler(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		mockSetup  func(s *analytics_mocks.Service)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "counts per day",
			query: "?date_from=2024-01-01&date_to=2024-01-03",
			mockSetup: func(s *analytics_mocks.Service) {
				s.On("CountLikesByDay", mock.Anything, "2024-01-01", "2024-01-03").
					Return(model.LikeAnalytics{"2024-01-01": 2, "2024-01-03": 1}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"2024-01-01":2,"2024-01-03":1}`,
		},
		{
			name:  "empty range",
			query: "?date_from=2024-02-01",
			mockSetup: func(s *analytics_mocks.Service) {
				s.On("CountLikesByDay", mock.Anything, "2024-02-01", "").Return(model.LikeAnalytics{}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{}`,
		},
		{
			name:  "malformed date_from",
			query: "?date_from=01-02-2024",
			mockSetup: func(s *analytics_mocks.Service) {
				s.On("CountLikesByDay", mock.Anything, "01-02-2024", "").
					Return(nil, custom_errors.NewInvalidInput("date_from", "invalid date_from format, use YYYY-MM-DD"))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid date_from format, use YYYY-MM-DD"}`,
		},
		{
			name:  "repository failure",
			query: "?date_from=2024-01-01",
			mockSetup: func(s *analytics_mocks.Service) {
				s.On("CountLikesByDay", mock.Anything, "2024-01-01", "").Return(nil, custom_errors.ErrDatabaseQuery)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"failed to count likes"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := analytics_mocks.NewService(t)
			tt.mockSetup(service)
			handler := post_http.NewAnalyticsHandler(service, logger.New("test"))

			engine := newEngine(caller)
			engine.GET("/api/post/analytics/", handler.CountLikesByDay)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/post/analytics/"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
