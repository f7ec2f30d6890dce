package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ashureev/arctic-quest/internal/catalog"
)

// CleanupCallback is called after an idle session has been closed.
type CleanupCallback func(userID string)

// Manager owns the live session of every player.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	catalog  *catalog.Catalog
	opts     Options
	onClose  CleanupCallback
}

// NewManager creates an empty session registry.
func NewManager(cat *catalog.Catalog, opts Options) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		catalog:  cat,
		opts:     opts.withDefaults(),
	}
}

// OnClose registers a callback run after a session is removed.
func (m *Manager) OnClose(fn CleanupCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClose = fn
}

// Get returns the session for userID, or nil.
func (m *Manager) Get(userID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[userID]
}

// GetOrCreate returns the session for userID, creating it on first use.
func (m *Manager) GetOrCreate(userID string) *Session {
	if s := m.Get(userID); s != nil {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := NewSession(userID, m.catalog, m.opts)
	m.sessions[userID] = s
	slog.Info("Game session created", "user_id", userID)
	return s
}

// Remove closes and forgets the session for userID.
func (m *Manager) Remove(userID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
	}
	onClose := m.onClose
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.Close()
	if onClose != nil {
		onClose(userID)
	}
	slog.Info("Game session closed", "user_id", userID)
	return true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SweepIdle closes sessions inactive for longer than ttl and returns the
// number removed.
func (m *Manager) SweepIdle(ttl time.Duration) int {
	now := m.opts.Now()

	m.mu.RLock()
	var expired []string
	for id, s := range m.sessions {
		if now.Sub(s.LastActive()) > ttl {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	removed := 0
	for _, id := range expired {
		if m.Remove(id) {
			removed++
		}
	}
	return removed
}

// CloseAll closes every session.
func (m *Manager) CloseAll() {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		m.Remove(id)
	}
}

// StartIdleWorker runs a background goroutine that periodically sweeps idle
// sessions until ctx is done.
func StartIdleWorker(ctx context.Context, m *Manager, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		slog.Info("Idle session worker started", "interval", interval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				if n := m.SweepIdle(ttl); n > 0 {
					slog.Info("Idle session worker closed sessions", "count", n)
				}
			case <-ctx.Done():
				slog.Info("Idle session worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
