package model

import "github.com/google/uuid"

type CreatePostDTO struct {
	OwnerID uuid.UUID `json:"owner_id"`
	Text    string    `json:"text"`
}
