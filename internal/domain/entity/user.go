package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard account (dispatcher, driver, warehouse staff, ...).
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Roles        Roles     `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
