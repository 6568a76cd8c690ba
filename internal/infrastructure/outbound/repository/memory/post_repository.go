package memory

import (
	"context"
	"log/slog"
	"sort"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"

	"github.com/google/uuid"
)

type PostRepository struct {
	log   ports.Logger
	store *Store
}

func NewPostRepository(store *Store, log ports.Logger) *PostRepository {
	return &PostRepository{log: log, store: store}
}

func (p *PostRepository) Create(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	p.log.Debug("Creating new post (memory impl)", slog.String("owner_id", post.OwnerID.String()))

	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	if _, ok := p.store.users[post.OwnerID]; !ok {
		return nil, custom_errors.ErrUserNotFound
	}

	text := post.Text
	newPost := &model.Post{
		ID:        p.store.nextID,
		OwnerID:   post.OwnerID,
		Text:      &text,
		CreatedAt: p.store.now(),
	}
	p.store.nextID++
	p.store.posts[newPost.ID] = newPost

	p.log.Debug("Successfully created post (memory impl)", slog.Int64("id", newPost.ID))
	return copyPost(newPost), nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	post, ok := p.store.posts[id]
	if !ok {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}
	return copyPost(post), nil
}

func (p *PostRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Post, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	result := make([]*model.Post, 0)
	for _, post := range p.store.posts {
		if post.OwnerID == ownerID {
			result = append(result, copyPost(post))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (p *PostRepository) ListAll(ctx context.Context) ([]*model.Post, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()

	result := make([]*model.Post, 0, len(p.store.posts))
	for _, post := range p.store.posts {
		result = append(result, copyPost(post))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (p *PostRepository) UpdateText(ctx context.Context, id int64, text string) (*model.Post, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	post, ok := p.store.posts[id]
	if !ok {
		return nil, custom_errors.ErrPostNotFound
	}

	now := p.store.now()
	post.Text = &text
	post.UpdatedAt = &now
	return copyPost(post), nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	if _, ok := p.store.posts[id]; !ok {
		return custom_errors.ErrPostNotFound
	}
	p.store.deletePostLocked(id)
	return nil
}

func copyPost(post *model.Post) *model.Post {
	result := *post
	if post.Text != nil {
		text := *post.Text
		result.Text = &text
	}
	if post.UpdatedAt != nil {
		updatedAt := *post.UpdatedAt
		result.UpdatedAt = &updatedAt
	}
	return &result
}
