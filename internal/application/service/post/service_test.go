package post_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	"postboard-service/internal/infrastructure/logger"
	"postboard-service/internal/infrastructure/outbound/metrics/prometheus"
	events_mock "postboard-service/mocks/events"
	like_repository_mock "postboard-service/mocks/like"
	post_repository_mock "postboard-service/mocks/post"
	postgres_mock "postboard-service/mocks/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type serviceMocks struct {
	postRepo  *post_repository_mock.Repository
	txPosts   *post_repository_mock.Repository
	txLikes   *like_repository_mock.Repository
	uow       *postgres_mock.UnitOfWork
	tx        *postgres_mock.Transaction
	publisher *events_mock.EventPublisher
}

func newServiceUnderTest(t *testing.T) (*PostService, *serviceMocks) {
	m := &serviceMocks{
		postRepo:  post_repository_mock.NewRepository(t),
		txPosts:   post_repository_mock.NewRepository(t),
		txLikes:   like_repository_mock.NewRepository(t),
		uow:       postgres_mock.NewUnitOfWork(t),
		tx:        postgres_mock.NewTransaction(t),
		publisher: events_mock.NewEventPublisher(t),
	}
	s := NewPostService(m.postRepo, m.uow, m.publisher, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
	return s, m
}

func (m *serviceMocks) beginTx() {
	m.uow.On("Begin", mock.Anything).Return(m.tx, nil)
	m.tx.On("PostRepository").Return(m.txPosts).Maybe()
	m.tx.On("LikeRepository").Return(m.txLikes).Maybe()
}

func textPtr(s string) *string {
	return &s
}

func TestPostService_CreatePost(t *testing.T) {
	ownerID := uuid.New()
	createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name        string
		mocks       func(m *serviceMocks)
		want        *model.Post
		wantErrType error
	}{
		{
			name: "Success",
			mocks: func(m *serviceMocks) {
				m.postRepo.On("Create", mock.Anything, &model.CreatePostDTO{OwnerID: ownerID, Text: "hello"}).
					Return(&model.Post{ID: 1, OwnerID: ownerID, Text: textPtr("hello"), CreatedAt: createdAt}, nil)
				m.publisher.On("Publish", mock.Anything, model.SubjectPostCreated, &model.PostEvent{PostID: 1, OwnerID: ownerID, Timestamp: createdAt}).
					Return(nil)
			},
			want: &model.Post{ID: 1, OwnerID: ownerID, Text: textPtr("hello"), CreatedAt: createdAt},
		},
		{
			name: "Publish failure does not fail the request",
			mocks: func(m *serviceMocks) {
				m.postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.CreatePostDTO")).
					Return(&model.Post{ID: 1, OwnerID: ownerID, Text: textPtr("hello"), CreatedAt: createdAt}, nil)
				m.publisher.On("Publish", mock.Anything, model.SubjectPostCreated, mock.Anything).
					Return(custom_errors.ErrPublishFailed)
			},
			want: &model.Post{ID: 1, OwnerID: ownerID, Text: textPtr("hello"), CreatedAt: createdAt},
		},
		{
			name: "Owner not found",
			mocks: func(m *serviceMocks) {
				m.postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.CreatePostDTO")).
					Return(nil, custom_errors.ErrUserNotFound)
			},
			wantErrType: custom_errors.ErrUserNotFound,
		},
		{
			name: "Database error",
			mocks: func(m *serviceMocks) {
				m.postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.CreatePostDTO")).
					Return(nil, errors.New("connection reset"))
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newServiceUnderTest(t)
			tt.mocks(m)

			got, err := s.CreatePost(context.Background(), &model.CreatePostDTO{OwnerID: ownerID, Text: "hello"})
			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostService_GetPostByID(t *testing.T) {
	tests := []struct {
		name        string
		repoErr     error
		wantErrType error
	}{
		{name: "Success"},
		{name: "Not found", repoErr: custom_errors.ErrPostNotFound, wantErrType: custom_errors.ErrPostNotFound},
		{name: "Database error", repoErr: errors.New("boom"), wantErrType: custom_errors.ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newServiceUnderTest(t)
			if tt.repoErr != nil {
				m.postRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, tt.repoErr)
			} else {
				m.postRepo.On("GetByID", mock.Anything, int64(7)).Return(&model.Post{ID: 7}, nil)
			}

			got, err := s.GetPostByID(context.Background(), 7)
			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, int64(7), got.ID)
		})
	}
}

func TestPostService_ListPosts(t *testing.T) {
	ownerID := uuid.New()

	t.Run("user posts", func(t *testing.T) {
		s, m := newServiceUnderTest(t)
		m.postRepo.On("ListByOwner", mock.Anything, ownerID).Return([]*model.Post{{ID: 1}, {ID: 2}}, nil)

		got, err := s.ListUserPosts(context.Background(), ownerID)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("all posts database error", func(t *testing.T) {
		s, m := newServiceUnderTest(t)
		m.postRepo.On("ListAll", mock.Anything).Return(nil, errors.New("boom"))

		got, err := s.ListAllPosts(context.Background())
		assert.ErrorIs(t, err, custom_errors.ErrDatabaseQuery)
		assert.Nil(t, got)
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()
	updatedAt := time.Now()

	tests := []struct {
		name        string
		userID      uuid.UUID
		update      *model.UpdatePostDTO
		mocks       func(m *serviceMocks)
		want        *model.Post
		wantErrType error
	}{
		{
			name:   "Success",
			userID: ownerID,
			update: &model.UpdatePostDTO{Text: textPtr("after")},
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(1)).Return(&model.Post{ID: 1, OwnerID: ownerID, Text: textPtr("before")}, nil)
				m.txPosts.On("UpdateText", mock.Anything, int64(1), "after").
					Return(&model.Post{ID: 1, OwnerID: ownerID, Text: textPtr("after"), UpdatedAt: &updatedAt}, nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
			},
			want: &model.Post{ID: 1, OwnerID: ownerID, Text: textPtr("after"), UpdatedAt: &updatedAt},
		},
		{
			name:   "No text is a no-op",
			userID: ownerID,
			update: &model.UpdatePostDTO{},
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(1)).Return(&model.Post{ID: 1, OwnerID: ownerID, Text: textPtr("before")}, nil)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			want: &model.Post{ID: 1, OwnerID: ownerID, Text: textPtr("before")},
		},
		{
			name:   "Not owner",
			userID: strangerID,
			update: &model.UpdatePostDTO{Text: textPtr("after")},
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(1)).Return(&model.Post{ID: 1, OwnerID: ownerID}, nil)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrForbidden,
		},
		{
			name:   "Post not found",
			userID: ownerID,
			update: &model.UpdatePostDTO{Text: textPtr("after")},
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(1)).Return(nil, custom_errors.ErrPostNotFound)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name:   "Transaction begin error",
			userID: ownerID,
			update: &model.UpdatePostDTO{Text: textPtr("after")},
			mocks: func(m *serviceMocks) {
				m.uow.On("Begin", mock.Anything).Return(nil, errors.New("db error"))
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
		{
			name:   "Commit error",
			userID: ownerID,
			update: &model.UpdatePostDTO{Text: textPtr("after")},
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(1)).Return(&model.Post{ID: 1, OwnerID: ownerID}, nil)
				m.txPosts.On("UpdateText", mock.Anything, int64(1), "after").Return(&model.Post{ID: 1}, nil)
				m.tx.On("Commit", mock.Anything).Return(errors.New("commit unexpectedly resulted in rollback"))
				m.tx.On("Rollback", mock.Anything).Return(errors.New("tx is closed"))
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newServiceUnderTest(t)
			tt.mocks(m)

			got, err := s.UpdatePost(context.Background(), tt.userID, 1, tt.update)
			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostService_DeletePost(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name        string
		userID      uuid.UUID
		mocks       func(m *serviceMocks)
		wantErrType error
	}{
		{
			name:   "Success",
			userID: ownerID,
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(3)).Return(&model.Post{ID: 3, OwnerID: ownerID}, nil)
				m.txPosts.On("Delete", mock.Anything, int64(3)).Return(nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
				m.publisher.On("Publish", mock.Anything, model.SubjectPostDeleted, mock.AnythingOfType("*model.PostEvent")).Return(nil)
			},
		},
		{
			name:   "Not owner",
			userID: uuid.New(),
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(3)).Return(&model.Post{ID: 3, OwnerID: ownerID}, nil)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrForbidden,
		},
		{
			name:   "Delete database error",
			userID: ownerID,
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(3)).Return(&model.Post{ID: 3, OwnerID: ownerID}, nil)
				m.txPosts.On("Delete", mock.Anything, int64(3)).Return(custom_errors.ErrDatabaseQuery)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newServiceUnderTest(t)
			tt.mocks(m)

			err := s.DeletePost(context.Background(), tt.userID, 3)
			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPostService_LikePost(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name        string
		mocks       func(m *serviceMocks)
		want        *model.LikeResult
		wantErrType error
	}{
		{
			name: "Success",
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(5)).Return(&model.Post{ID: 5}, nil)
				m.txLikes.On("Create", mock.Anything, userID, int64(5)).Return(nil)
				m.txLikes.On("CountByPost", mock.Anything, int64(5)).Return(int64(2), nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
				m.publisher.On("Publish", mock.Anything, model.SubjectPostLiked, mock.MatchedBy(func(e *model.LikeEvent) bool {
					return e.PostID == 5 && e.UserID == userID && e.TotalLikes == 2
				})).Return(nil)
			},
			want: &model.LikeResult{PostID: 5, TotalLikes: 2},
		},
		{
			name: "Already liked",
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(5)).Return(&model.Post{ID: 5}, nil)
				m.txLikes.On("Create", mock.Anything, userID, int64(5)).Return(custom_errors.ErrAlreadyLiked)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrAlreadyLiked,
		},
		{
			name: "Post not found",
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(5)).Return(nil, custom_errors.ErrPostNotFound)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name: "Liking user was deleted",
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(5)).Return(&model.Post{ID: 5}, nil)
				m.txLikes.On("Create", mock.Anything, userID, int64(5)).Return(custom_errors.ErrUserNotFound)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrUserNotFound,
		},
		{
			name: "Count error",
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(5)).Return(&model.Post{ID: 5}, nil)
				m.txLikes.On("Create", mock.Anything, userID, int64(5)).Return(nil)
				m.txLikes.On("CountByPost", mock.Anything, int64(5)).Return(int64(0), errors.New("boom"))
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newServiceUnderTest(t)
			tt.mocks(m)

			got, err := s.LikePost(context.Background(), userID, 5)
			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostService_UnlikePost(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name        string
		mocks       func(m *serviceMocks)
		want        *model.LikeResult
		wantErrType error
	}{
		{
			name: "Success",
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(5)).Return(&model.Post{ID: 5}, nil)
				m.txLikes.On("Delete", mock.Anything, userID, int64(5)).Return(nil)
				m.txLikes.On("CountByPost", mock.Anything, int64(5)).Return(int64(0), nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
				m.publisher.On("Publish", mock.Anything, model.SubjectPostUnliked, mock.AnythingOfType("*model.LikeEvent")).Return(nil)
			},
			want: &model.LikeResult{PostID: 5, TotalLikes: 0},
		},
		{
			name: "Not liked",
			mocks: func(m *serviceMocks) {
				m.beginTx()
				m.txPosts.On("GetByID", mock.Anything, int64(5)).Return(&model.Post{ID: 5}, nil)
				m.txLikes.On("Delete", mock.Anything, userID, int64(5)).Return(custom_errors.ErrNotLiked)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrNotLiked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := newServiceUnderTest(t)
			tt.mocks(m)

			got, err := s.UnlikePost(context.Background(), userID, 5)
			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
