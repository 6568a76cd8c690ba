package memory

import (
	"context"
	"sync"
	"time"

	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"
	like_repository "postboard-service/internal/domain/ports/output/like"
	post_repository "postboard-service/internal/domain/ports/output/post"

	"github.com/google/uuid"
)

type likeKey struct {
	userID uuid.UUID
	postID int64
}

// Store holds users, posts and likes behind one mutex so that deletes can
// cascade the way the postgres foreign keys do.
type Store struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]*model.User
	posts  map[int64]*model.Post
	likes  map[likeKey]time.Time
	nextID int64
	now    func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		users:  make(map[uuid.UUID]*model.User),
		posts:  make(map[int64]*model.Post),
		likes:  make(map[likeKey]time.Time),
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// deletePostLocked removes a post and its likes. Caller holds mu.
func (s *Store) deletePostLocked(id int64) {
	delete(s.posts, id)
	for key := range s.likes {
		if key.postID == id {
			delete(s.likes, key)
		}
	}
}

// UnitOfWork hands out repositories over the shared store. Every write is
// applied immediately, so Rollback does not undo earlier statements.
type UnitOfWork struct {
	store *Store
	log   ports.Logger
}

func NewUnitOfWork(store *Store, log ports.Logger) *UnitOfWork {
	return &UnitOfWork{store: store, log: log}
}

func (u *UnitOfWork) Begin(ctx context.Context) (ports.Transaction, error) {
	return &transaction{store: u.store, log: u.log}, nil
}

type transaction struct {
	store *Store
	log   ports.Logger
}

func (t *transaction) PostRepository() post_repository.Repository {
	return NewPostRepository(t.store, t.log)
}

func (t *transaction) LikeRepository() like_repository.Repository {
	return NewLikeRepository(t.store, t.log)
}

func (t *transaction) Commit(ctx context.Context) error {
	return nil
}

func (t *transaction) Rollback(ctx context.Context) error {
	return nil
}
