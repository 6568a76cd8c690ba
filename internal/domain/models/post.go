package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        int64      `json:"id"`
	OwnerID   uuid.UUID  `json:"owner_id"`
	Text      *string    `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
