package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubjectPostCreated = "post.created"
	SubjectPostDeleted = "post.deleted"
	SubjectPostLiked   = "post.liked"
	SubjectPostUnliked = "post.unliked"
)

type PostEvent struct {
	PostID    int64     `json:"post_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Timestamp time.Time `json:"timestamp"`
}

type LikeEvent struct {
	PostID     int64     `json:"post_id"`
	UserID     uuid.UUID `json:"user_id"`
	TotalLikes int64     `json:"total_likes"`
	Timestamp  time.Time `json:"timestamp"`
}
