package db

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a newsletter sign-up
type Subscriber struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchLog is one recorded search
type SearchLog struct {
	ID        uuid.UUID `json:"id"`
	Term      string    `json:"term"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}
