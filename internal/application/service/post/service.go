package post_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"postboard-service/internal/domain/custom_errors"
	model "postboard-service/internal/domain/models"
	ports "postboard-service/internal/domain/ports/output"
	post_repository "postboard-service/internal/domain/ports/output/post"

	"github.com/google/uuid"
)

type PostService struct {
	postRepo  post_repository.Repository
	uow       ports.UnitOfWork
	publisher ports.EventPublisher
	log       ports.Logger
	metrics   ports.MetricsProvider
}

func NewPostService(
	postRepo post_repository.Repository,
	uow ports.UnitOfWork,
	publisher ports.EventPublisher,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		uow:       uow,
		publisher: publisher,
		log:       log,
		metrics:   metrics,
	}
}

func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	createdPost, err := s.postRepo.Create(ctx, post)
	if err != nil {
		s.metrics.IncrementPostOperations("create", false)
		switch {
		case errors.Is(err, custom_errors.ErrUserNotFound):
			s.log.Debug("Post owner not found", slog.String("owner_id", post.OwnerID.String()))
			return nil, custom_errors.ErrUserNotFound
		default:
			s.log.Error("Failed to create post", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}
	s.metrics.IncrementPostOperations("create", true)

	s.publish(ctx, model.SubjectPostCreated, &model.PostEvent{
		PostID:    createdPost.ID,
		OwnerID:   createdPost.OwnerID,
		Timestamp: createdPost.CreatedAt,
	})
	return createdPost, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			s.log.Debug("Post not found", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		default:
			s.log.Error("Failed to get post by id",
				slog.String("error", err.Error()),
				slog.Int64("id", id))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}
	return post, nil
}

func (s *PostService) ListUserPosts(ctx context.Context, ownerID uuid.UUID) ([]*model.Post, error) {
	posts, err := s.postRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error("Failed to list user posts",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return posts, nil
}

func (s *PostService) ListAllPosts(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return posts, nil
}

// UpdatePost replaces the post text when one is supplied. A nil text returns
// the stored post untouched.
func (s *PostService) UpdatePost(ctx context.Context, userID uuid.UUID, id int64, update *model.UpdatePostDTO) (result *model.Post, err error) {
	defer func() { s.metrics.IncrementPostOperations("update", err == nil) }()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer s.rollbackUnlessCommitted(ctx, tx, &txCommitted)

	postRepo := tx.PostRepository()

	existingPost, err := s.ownedPost(ctx, postRepo, userID, id)
	if err != nil {
		return nil, err
	}

	if update == nil || update.Text == nil {
		s.log.Debug("Nothing to update", slog.Int64("id", id))
		return existingPost, nil
	}

	updatedPost, err := postRepo.UpdateText(ctx, id, *update.Text)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to update post", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = s.commit(ctx, tx); err != nil {
		return nil, err
	}
	txCommitted = true

	return updatedPost, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID uuid.UUID, id int64) (err error) {
	defer func() { s.metrics.IncrementPostOperations("delete", err == nil) }()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer s.rollbackUnlessCommitted(ctx, tx, &txCommitted)

	postRepo := tx.PostRepository()

	post, err := s.ownedPost(ctx, postRepo, userID, id)
	if err != nil {
		return err
	}

	if err = postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found when deleting post", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}

	if err = s.commit(ctx, tx); err != nil {
		return err
	}
	txCommitted = true

	s.publish(ctx, model.SubjectPostDeleted, &model.PostEvent{
		PostID:    post.ID,
		OwnerID:   post.OwnerID,
		Timestamp: time.Now(),
	})
	return nil
}

// LikePost records the caller's like and returns the post's new total in the
// same transaction.
func (s *PostService) LikePost(ctx context.Context, userID uuid.UUID, postID int64) (result *model.LikeResult, err error) {
	defer func() { s.metrics.IncrementLikeOperations("like", err == nil) }()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer s.rollbackUnlessCommitted(ctx, tx, &txCommitted)

	if _, err = s.findPost(ctx, tx, postID); err != nil {
		return nil, err
	}

	likeRepo := tx.LikeRepository()
	if err = likeRepo.Create(ctx, userID, postID); err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrAlreadyLiked):
			s.log.Debug("Post already liked", slog.Int64("post_id", postID), slog.String("user_id", userID.String()))
			return nil, custom_errors.ErrAlreadyLiked
		case errors.Is(err, custom_errors.ErrPostNotFound):
			return nil, custom_errors.ErrPostNotFound
		case errors.Is(err, custom_errors.ErrUserNotFound):
			s.log.Debug("Liking user no longer exists", slog.String("user_id", userID.String()))
			return nil, custom_errors.ErrUserNotFound
		default:
			s.log.Error("Failed to like post", slog.String("error", err.Error()), slog.Int64("post_id", postID))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	total, err := s.countLikes(ctx, tx, postID)
	if err != nil {
		return nil, err
	}

	if err = s.commit(ctx, tx); err != nil {
		return nil, err
	}
	txCommitted = true

	s.publish(ctx, model.SubjectPostLiked, &model.LikeEvent{
		PostID:     postID,
		UserID:     userID,
		TotalLikes: total,
		Timestamp:  time.Now(),
	})
	return &model.LikeResult{PostID: postID, TotalLikes: total}, nil
}

// UnlikePost removes the caller's like. Unliking a post that was never liked
// fails with ErrNotLiked and leaves the count unchanged.
func (s *PostService) UnlikePost(ctx context.Context, userID uuid.UUID, postID int64) (result *model.LikeResult, err error) {
	defer func() { s.metrics.IncrementLikeOperations("unlike", err == nil) }()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer s.rollbackUnlessCommitted(ctx, tx, &txCommitted)

	if _, err = s.findPost(ctx, tx, postID); err != nil {
		return nil, err
	}

	likeRepo := tx.LikeRepository()
	if err = likeRepo.Delete(ctx, userID, postID); err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrNotLiked):
			s.log.Debug("Post not liked by user", slog.Int64("post_id", postID), slog.String("user_id", userID.String()))
			return nil, custom_errors.ErrNotLiked
		default:
			s.log.Error("Failed to unlike post", slog.String("error", err.Error()), slog.Int64("post_id", postID))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	total, err := s.countLikes(ctx, tx, postID)
	if err != nil {
		return nil, err
	}

	if err = s.commit(ctx, tx); err != nil {
		return nil, err
	}
	txCommitted = true

	s.publish(ctx, model.SubjectPostUnliked, &model.LikeEvent{
		PostID:     postID,
		UserID:     userID,
		TotalLikes: total,
		Timestamp:  time.Now(),
	})
	return &model.LikeResult{PostID: postID, TotalLikes: total}, nil
}

func (s *PostService) ownedPost(ctx context.Context, postRepo post_repository.Repository, userID uuid.UUID, id int64) (*model.Post, error) {
	post, err := postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if post.OwnerID != userID {
		s.log.Debug("User is not owner of post",
			slog.String("user_id", userID.String()),
			slog.String("owner_id", post.OwnerID.String()))
		return nil, custom_errors.ErrForbidden
	}
	return post, nil
}

func (s *PostService) findPost(ctx context.Context, tx ports.Transaction, postID int64) (*model.Post, error) {
	post, err := tx.PostRepository().GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found", slog.Int64("post_id", postID))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return post, nil
}

func (s *PostService) countLikes(ctx context.Context, tx ports.Transaction, postID int64) (int64, error) {
	total, err := tx.LikeRepository().CountByPost(ctx, postID)
	if err != nil {
		s.log.Error("Failed to count likes", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		return 0, custom_errors.ErrDatabaseQuery
	}
	return total, nil
}

func (s *PostService) commit(ctx context.Context, tx ports.Transaction) error {
	if err := tx.Commit(ctx); err != nil {
		if strings.Contains(err.Error(), "commit unexpectedly resulted in rollback") {
			s.log.Warn("Transaction commit resulted in rollback", slog.String("error", err.Error()))
			return custom_errors.ErrDatabaseQuery
		}
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (s *PostService) rollbackUnlessCommitted(ctx context.Context, tx ports.Transaction, committed *bool) {
	if *committed || tx == nil {
		return
	}
	if err := tx.Rollback(ctx); err != nil {
		if !strings.Contains(err.Error(), "tx is closed") && !strings.Contains(err.Error(), "commit unexpectedly resulted in rollback") {
			s.log.Error("Failed to rollback transaction", slog.String("error", err.Error()))
		} else {
			s.log.Debug("Transaction already closed during rollback", slog.String("error", err.Error()))
		}
	}
}

// publish logs delivery failures instead of returning them.
func (s *PostService) publish(ctx context.Context, subject string, event any) {
	if err := s.publisher.Publish(ctx, subject, event); err != nil {
		s.log.Warn("Failed to publish event",
			slog.String("subject", subject),
			slog.String("error", err.Error()))
	}
}
