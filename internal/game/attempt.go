package game

import (
	"github.com/ashureev/arctic-quest/internal/domain"
	"github.com/google/uuid"
)

// Resolution is the result of submitting an answer.
type Resolution struct {
	Outcome     domain.Outcome
	AnswerID    int
	EarnedCoins int
	BonusPoints int
	HintsSpent  int
	Explanation string
}

// Attempt is the transient state of one riddle presentation.
type Attempt struct {
	ID        string
	MissionID int
	LevelID   int
	Riddle    domain.Riddle

	countdown Countdown
	hints     *HintLedger
	selected  int
	hasSelect bool
	outcome   domain.Outcome
}

func newAttempt(missionID, levelID int, riddle domain.Riddle) *Attempt {
	a := &Attempt{
		ID:        uuid.NewString(),
		MissionID: missionID,
		LevelID:   levelID,
		Riddle:    riddle,
		hints:     NewHintLedger(riddle.Hints),
		outcome:   domain.OutcomeUnresolved,
	}
	a.countdown.Start(riddle.TimeLimit)
	return a
}

// Pending reports whether a resolution is waiting for its deferred follow-up.
func (a *Attempt) Pending() bool {
	return a.outcome != domain.OutcomeUnresolved
}

// Evaluate resolves the attempt with answerID. Submissions while a
// resolution is pending are rejected. Answer ids that do not exist count
// as incorrect.
func (a *Attempt) Evaluate(answerID int, w *Wallet) Resolution {
	if a.Pending() {
		return Resolution{Outcome: domain.OutcomeRejected}
	}

	a.selected = answerID
	a.hasSelect = true
	a.countdown.Pause()

	answer, ok := a.Riddle.AnswerByID(answerID)
	res := Resolution{
		AnswerID:    answerID,
		HintsSpent:  a.hints.Spent(),
		Explanation: answer.Explanation,
	}
	if !ok || !answer.Correct {
		a.outcome = domain.OutcomeIncorrect
		res.Outcome = domain.OutcomeIncorrect
		return res
	}

	bonus := TimeBonus(a.countdown.Limit(), a.countdown.Remaining())
	reward := Reward(a.Riddle.BaseReward, bonus, a.hints.Spent())
	w.Credit(reward)

	a.outcome = domain.OutcomeCorrect
	res.Outcome = domain.OutcomeCorrect
	res.EarnedCoins = reward
	res.BonusPoints = bonus
	return res
}

// Reset re-presents the riddle after an incorrect answer: the selection and
// resolution clear and the countdown restarts from the full limit.
// Revealed hints are kept.
func (a *Attempt) Reset() {
	a.outcome = domain.OutcomeUnresolved
	a.selected = 0
	a.hasSelect = false
	a.countdown.Restart(a.Riddle.TimeLimit)
}

// RevealedHint is a bought hint with its text.
type RevealedHint struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Cost  int    `json:"cost"`
}

// AttemptSnapshot is a read-only view of an attempt.
type AttemptSnapshot struct {
	AttemptID      string         `json:"attempt_id"`
	MissionID      int            `json:"mission_id"`
	LevelID        int            `json:"level_id"`
	Remaining      int            `json:"remaining"`
	TimeLimit      int            `json:"time_limit"`
	Running        bool           `json:"running"`
	Outcome        domain.Outcome `json:"outcome"`
	SelectedAnswer *int           `json:"selected_answer,omitempty"`
	RevealedHints  []RevealedHint `json:"revealed_hints"`
	HintsSpent     int            `json:"hints_spent"`
}

// Snapshot returns the current attempt state.
func (a *Attempt) Snapshot() AttemptSnapshot {
	snap := AttemptSnapshot{
		AttemptID:     a.ID,
		MissionID:     a.MissionID,
		LevelID:       a.LevelID,
		Remaining:     a.countdown.Remaining(),
		TimeLimit:     a.countdown.Limit(),
		Running:       a.countdown.Running(),
		Outcome:       a.outcome,
		RevealedHints: make([]RevealedHint, 0, len(a.hints.order)),
		HintsSpent:    a.hints.Spent(),
	}
	if a.hasSelect {
		sel := a.selected
		snap.SelectedAnswer = &sel
	}
	for _, idx := range a.hints.Revealed() {
		h := a.Riddle.Hints[idx]
		snap.RevealedHints = append(snap.RevealedHints, RevealedHint{Index: idx, Text: h.Text, Cost: h.Cost})
	}
	return snap
}
