package model

// UpdatePostDTO carries the replacement text. A nil Text leaves the post untouched.
type UpdatePostDTO struct {
	Text *string `json:"text,omitempty"`
}
