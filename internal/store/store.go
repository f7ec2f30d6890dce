// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/ashureev/arctic-quest/internal/domain"
)

// Repository defines the interface for persisting players and their activity journal.
type Repository interface {
	// GetPlayer retrieves a player by user ID. Returns nil, nil when absent.
	GetPlayer(ctx context.Context, userID string) (*domain.Player, error)

	// UpsertPlayer creates or updates a player record.
	UpsertPlayer(ctx context.Context, player *domain.Player) error

	// UpdateLastSeen updates the last_seen_at timestamp for a player.
	UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error

	// RecordActivity appends an entry to the activity journal.
	RecordActivity(ctx context.Context, activity domain.Activity) error

	// RecentActivities returns the newest journal entries for a player.
	RecentActivities(ctx context.Context, userID string, limit int) ([]domain.Activity, error)

	// CountActivities counts journal entries of one kind for a player.
	CountActivities(ctx context.Context, userID string, kind domain.EventKind) (int, error)

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
