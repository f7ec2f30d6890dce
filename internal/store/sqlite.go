package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/arctic-quest/internal/domain"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

type playerRow struct {
	UserID     string `db:"user_id"`
	Username   string `db:"username"`
	LastSeenAt int64  `db:"last_seen_at"`
	CreatedAt  int64  `db:"created_at"`
	UpdatedAt  int64  `db:"updated_at"`
}

func (r playerRow) toDomain() *domain.Player {
	return &domain.Player{
		UserID:     r.UserID,
		Username:   r.Username,
		LastSeenAt: time.Unix(r.LastSeenAt, 0),
		CreatedAt:  time.Unix(r.CreatedAt, 0),
		UpdatedAt:  time.Unix(r.UpdatedAt, 0),
	}
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS players (
		user_id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		last_seen_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		mission_id INTEGER NOT NULL DEFAULT 0,
		level_id INTEGER NOT NULL DEFAULT 0,
		coins INTEGER NOT NULL DEFAULT 0,
		bonus INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_activities_user_created ON activities(user_id, created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetPlayer retrieves a player by user ID.
func (s *SQLiteStore) GetPlayer(ctx context.Context, userID string) (*domain.Player, error) {
	query := `
		SELECT user_id, username, last_seen_at, created_at, updated_at
		FROM players WHERE user_id = ?`

	var row playerRow
	err := s.db.GetContext(ctx, &row, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan player row: %w", err)
	}
	return row.toDomain(), nil
}

// UpsertPlayer creates or updates a player record.
func (s *SQLiteStore) UpsertPlayer(ctx context.Context, player *domain.Player) error {
	query := `
	INSERT INTO players (user_id, username, last_seen_at, created_at, updated_at)
	VALUES (:user_id, :username, :last_seen_at, :created_at, :updated_at)
	ON CONFLICT(user_id) DO UPDATE SET
		username = excluded.username,
		last_seen_at = excluded.last_seen_at,
		updated_at = excluded.updated_at`

	row := playerRow{
		UserID:     player.UserID,
		Username:   player.Username,
		LastSeenAt: player.LastSeenAt.Unix(),
		CreatedAt:  player.CreatedAt.Unix(),
		UpdatedAt:  player.UpdatedAt.Unix(),
	}
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

// UpdateLastSeen updates the last_seen_at timestamp for a player.
func (s *SQLiteStore) UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error {
	query := `UPDATE players SET last_seen_at = ?, updated_at = ? WHERE user_id = ?`
	result, err := s.db.ExecContext(ctx, query, lastSeen.Unix(), time.Now().Unix(), userID)
	if err != nil {
		return fmt.Errorf("update last_seen: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		slog.Warn("UpdateLastSeen affected 0 rows", "user_id", userID)
	}
	return nil
}

// RecordActivity appends an entry to the activity journal.
func (s *SQLiteStore) RecordActivity(ctx context.Context, activity domain.Activity) error {
	query := `
	INSERT INTO activities (id, user_id, kind, mission_id, level_id, coins, bonus, created_at)
	VALUES (:id, :user_id, :kind, :mission_id, :level_id, :coins, :bonus, :created_at)`

	if _, err := s.db.NamedExecContext(ctx, query, activity); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// RecentActivities returns the newest journal entries for a player, newest first.
func (s *SQLiteStore) RecentActivities(ctx context.Context, userID string, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, user_id, kind, mission_id, level_id, coins, bonus, created_at
		FROM activities WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`

	var activities []domain.Activity
	if err := s.db.SelectContext(ctx, &activities, query, userID, limit); err != nil {
		return nil, fmt.Errorf("query recent activities: %w", err)
	}
	return activities, nil
}

// CountActivities counts journal entries of one kind for a player.
func (s *SQLiteStore) CountActivities(ctx context.Context, userID string, kind domain.EventKind) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM activities WHERE user_id = ? AND kind = ?`
	if err := s.db.GetContext(ctx, &n, query, userID, kind); err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
