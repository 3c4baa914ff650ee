package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/IzumiH2005/hearthcliff-flash-forge-decks-00-sub000/pkg/models"
)

// UserRepository handles database operations for the local profile.
// Exactly one user row exists per device.
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const userColumns = "id, name, email, avatar, bio, created_at"

// Get returns the singleton user, or nil if none has been created yet.
// Reading never mutates the stored row; session binding happens through
// Reconcile.
func (r *UserRepository) Get(ctx context.Context) (*models.User, error) {
	var user models.User
	err := DB.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users LIMIT 1")
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// Create inserts the singleton user. Called once on first load.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := DB.ExecContext(ctx, `
		INSERT INTO users (id, name, email, avatar, bio, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		user.ID,
		user.Name,
		user.Email,
		user.Avatar,
		user.Bio,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}

	return nil
}

// UserUpdate carries the mutable profile fields for a partial update.
type UserUpdate struct {
	Name   *string
	Email  *string
	Avatar *string
	Bio    *string
}

// Update merges the partial fields into the singleton user. Returns nil
// if no user exists yet.
func (r *UserRepository) Update(ctx context.Context, partial UserUpdate) (*models.User, error) {
	user, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if partial.Name != nil {
		user.Name = *partial.Name
	}
	if partial.Email != nil {
		user.Email = *partial.Email
	}
	if partial.Avatar != nil {
		user.Avatar = *partial.Avatar
	}
	if partial.Bio != nil {
		user.Bio = *partial.Bio
	}

	_, err = DB.ExecContext(ctx, `
		UPDATE users SET name = ?, email = ?, avatar = ?, bio = ? WHERE id = ?
	`,
		user.Name,
		user.Email,
		user.Avatar,
		user.Bio,
		user.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %v", err)
	}

	return user, nil
}

// Reconcile pins the singleton user's id to the active session key. It is
// the explicit binding step run when a key is saved or adopted; if no
// user exists yet one is created under the key.
func (r *UserRepository) Reconcile(ctx context.Context, sessionKey string) (*models.User, error) {
	if sessionKey == "" {
		return r.Get(ctx)
	}

	user, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &models.User{
			ID:        sessionKey,
			Name:      "Utilisateur",
			CreatedAt: time.Now().UTC(),
		}
		if err := r.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	if user.ID != sessionKey {
		if _, err := DB.ExecContext(ctx, "UPDATE users SET id = ? WHERE id = ?", sessionKey, user.ID); err != nil {
			return nil, fmt.Errorf("failed to rebind user to session: %v", err)
		}
		user.ID = sessionKey
	}

	return user, nil
}
