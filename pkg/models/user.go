package models

import "time"

// User represents the local profile. Exactly one user exists per device;
// its ID is kept equal to the active session key.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Avatar    string    `json:"avatar,omitempty" db:"avatar"`
	Bio       string    `json:"bio,omitempty" db:"bio"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
