package models

import (
	"time"

	"github.com/google/uuid"
)

// Auth providers
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"`
	Provider     string    `json:"provider"`
	ProviderID   *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
