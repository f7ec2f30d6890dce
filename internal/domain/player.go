// Package domain contains core domain types for the Arctic quest service.
package domain

import (
	"time"
)

// Player is an anonymous per-device participant.
type Player struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IdleFor returns how long the player has been inactive relative to now.
// Returns 0 for a player seen in the future.
func (p *Player) IdleFor(now time.Time) time.Duration {
	idle := now.Sub(p.LastSeenAt)
	if idle < 0 {
		return 0
	}
	return idle
}
