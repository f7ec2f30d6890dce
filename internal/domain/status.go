package domain

// LevelStatus is the per-level progression state.
// Transitions run locked -> available -> completed and never backwards.
type LevelStatus string

const (
	LevelLocked    LevelStatus = "locked"
	LevelAvailable LevelStatus = "available"
	LevelCompleted LevelStatus = "completed"
)

// Unlock moves a locked level to available.
// The second result reports whether the status changed.
func (s LevelStatus) Unlock() (LevelStatus, bool) {
	if s == LevelLocked {
		return LevelAvailable, true
	}
	return s, false
}

// Complete moves an available level to completed.
// Locked and already completed levels are left untouched.
func (s LevelStatus) Complete() (LevelStatus, bool) {
	if s == LevelAvailable {
		return LevelCompleted, true
	}
	return s, false
}

// MissionStatus is the aggregate status of a mission.
type MissionStatus string

const (
	MissionLocked     MissionStatus = "locked"
	MissionAvailable  MissionStatus = "available"
	MissionInProgress MissionStatus = "in-progress"
	MissionCompleted  MissionStatus = "completed"
)

// DeriveMissionStatus computes a mission's status from its gating and level counts.
func DeriveMissionStatus(unlocked bool, completed, total int) MissionStatus {
	switch {
	case !unlocked:
		return MissionLocked
	case total > 0 && completed == total:
		return MissionCompleted
	case completed > 0:
		return MissionInProgress
	default:
		return MissionAvailable
	}
}

// Outcome is the resolution state of an attempt.
type Outcome string

const (
	OutcomeUnresolved Outcome = "unresolved"
	OutcomeCorrect    Outcome = "correct"
	OutcomeIncorrect  Outcome = "incorrect"
	// OutcomeRejected is returned when a submission is refused outright.
	OutcomeRejected Outcome = "rejected"
)
