// Package session keeps the per-visitor view state of the advisory dashboard.
package session

import (
	"context"
	"errors"
	"time"

	"agro-advisor/internal/models"
)

var ErrNotFound = errors.New("SESSION_NOT_FOUND")

// Store persists sessions for at most ttl. Load returns ErrNotFound for
// missing or expired sessions.
type Store interface {
	Load(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
