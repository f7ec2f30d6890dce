package domain

import "time"

// EventKind names a game event.
type EventKind string

const (
	EventLevelOpened      EventKind = "level_opened"
	EventHintRevealed     EventKind = "hint_revealed"
	EventAnswerCorrect    EventKind = "answer_correct"
	EventAnswerIncorrect  EventKind = "answer_incorrect"
	EventAttemptReset     EventKind = "attempt_reset"
	EventLevelCompleted   EventKind = "level_completed"
	EventLevelUnlocked    EventKind = "level_unlocked"
	EventMissionUnlocked  EventKind = "mission_unlocked"
	EventMissionCompleted EventKind = "mission_completed"
	EventGateSolved       EventKind = "gate_solved"
	EventWalletChanged    EventKind = "wallet_changed"
)

// Event is emitted by a player's session on every state transition.
type Event struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	UserID    string    `json:"user_id"`
	MissionID int       `json:"mission_id,omitempty"`
	LevelID   int       `json:"level_id,omitempty"`
	Coins     int       `json:"coins,omitempty"`
	Bonus     int       `json:"bonus,omitempty"`
	Balance   int       `json:"balance"`
	At        time.Time `json:"at"`
}

// Activity is a persisted journal entry.
type Activity struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Kind      EventKind `json:"kind" db:"kind"`
	MissionID int       `json:"mission_id" db:"mission_id"`
	LevelID   int       `json:"level_id" db:"level_id"`
	Coins     int       `json:"coins" db:"coins"`
	Bonus     int       `json:"bonus" db:"bonus"`
	CreatedAt int64     `json:"created_at" db:"created_at"`
}

// ActivityFromEvent converts an event into its journal form.
func ActivityFromEvent(e Event) Activity {
	return Activity{
		ID:        e.ID,
		UserID:    e.UserID,
		Kind:      e.Kind,
		MissionID: e.MissionID,
		LevelID:   e.LevelID,
		Coins:     e.Coins,
		Bonus:     e.Bonus,
		CreatedAt: e.At.Unix(),
	}
}

// Achievement is a badge derived from session statistics.
type Achievement struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Unlocked bool   `json:"unlocked"`
}
