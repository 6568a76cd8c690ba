package model

// LikeResult is returned by like/unlike with the post's like total after the change.
type LikeResult struct {
	PostID     int64 `json:"post_id"`
	TotalLikes int64 `json:"total_likes"`
}
