package game

import (
	"testing"
	"time"

	"github.com/ashureev/arctic-quest/internal/domain"
)

func TestSession_OpenLevelWithoutRiddleCompletes(t *testing.T) {
	h := newHarness(nil)

	op, ok := h.session.OpenLevel(1, 1)
	if !ok || !op.Completed || op.Riddle != nil {
		t.Fatalf("expected level 1 to complete on open, got %+v ok=%v", op, ok)
	}
	if op.Advance == nil || op.Advance.NextLevelID != 2 {
		t.Errorf("expected level 2 unlocked, got %+v", op.Advance)
	}
	if !h.sink.has(domain.EventLevelCompleted) {
		t.Error("expected level_completed event")
	}
}

func TestSession_OpenLockedLevel(t *testing.T) {
	h := newHarness(nil)

	if _, ok := h.session.OpenLevel(1, 2); ok {
		t.Error("locked level must not open")
	}
	if _, ok := h.session.OpenLevel(3, 1); ok {
		t.Error("level of a locked mission must not open")
	}
}

func TestSession_ScenarioA(t *testing.T) {
	h := newHarness(nil)
	op := h.openRiddleLevel()
	if op.Riddle == nil || op.Attempt.Remaining != 60 {
		t.Fatalf("unexpected opening: %+v", op)
	}

	h.sched.Advance(20 * time.Second)
	snap, _ := h.session.Attempt(2)
	if snap.Remaining != 40 {
		t.Fatalf("expected 40 remaining, got %d", snap.Remaining)
	}

	res := h.session.SubmitAnswer(2, 2)
	if res.Outcome != domain.OutcomeCorrect || res.EarnedCoins != 20 || res.BonusPoints != 10 {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if h.session.WalletBalance() != 120 {
		t.Errorf("expected balance 120, got %d", h.session.WalletBalance())
	}

	h.sched.Advance(2500 * time.Millisecond)
	m, _ := h.session.Mission(1)
	if m.Levels[1].Status != domain.LevelCompleted || m.Levels[2].Status != domain.LevelAvailable {
		t.Errorf("expected level 2 completed and 3 available, got %+v", m.Levels)
	}
	if _, ok := h.session.Attempt(2); ok {
		t.Error("attempt should be torn down after success")
	}
}

func TestSession_ScenarioB(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()

	if !h.session.RevealHint(2, 0) {
		t.Fatal("expected hint to be revealed")
	}
	if h.session.WalletBalance() != 95 {
		t.Fatalf("expected balance 95, got %d", h.session.WalletBalance())
	}

	h.sched.Advance(40 * time.Second)
	res := h.session.SubmitAnswer(2, 2)
	if res.Outcome != domain.OutcomeCorrect || res.EarnedCoins != 10 || res.BonusPoints != 5 {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if h.session.WalletBalance() != 105 {
		t.Errorf("expected balance 105, got %d", h.session.WalletBalance())
	}
}

func TestSession_ScenarioC(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()
	h.session.RevealHint(2, 0)
	h.sched.Advance(10 * time.Second)

	before := h.session.WalletBalance()
	res := h.session.SubmitAnswer(2, 1)
	if res.Outcome != domain.OutcomeIncorrect || res.Explanation != "no" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	if h.session.WalletBalance() != before {
		t.Errorf("incorrect answer changed the wallet: %d -> %d", before, h.session.WalletBalance())
	}
	if again := h.session.SubmitAnswer(2, 2); again.Outcome != domain.OutcomeRejected {
		t.Errorf("submit while pending must be rejected, got %s", again.Outcome)
	}

	snap, _ := h.session.Attempt(2)
	if snap.SelectedAnswer == nil || *snap.SelectedAnswer != 1 || snap.Remaining != 50 {
		t.Fatalf("unexpected pending snapshot: %+v", snap)
	}

	h.sched.Advance(3 * time.Second)
	snap, ok := h.session.Attempt(2)
	if !ok {
		t.Fatal("attempt should survive an incorrect answer")
	}
	if snap.Outcome != domain.OutcomeUnresolved || snap.SelectedAnswer != nil {
		t.Errorf("expected cleared resolution, got %+v", snap)
	}
	if snap.Remaining != 60 || !snap.Running {
		t.Errorf("expected a fresh running timer, got remaining=%d running=%v", snap.Remaining, snap.Running)
	}
	if len(snap.RevealedHints) != 1 || snap.RevealedHints[0].Text != "cheap" {
		t.Errorf("revealed hints must persist, got %+v", snap.RevealedHints)
	}
	if h.session.RevealHint(2, 0) {
		t.Error("already revealed hint must not be bought again")
	}
	if h.session.WalletBalance() != before {
		t.Errorf("expected balance %d, got %d", before, h.session.WalletBalance())
	}
}

func TestSession_ScenarioD(t *testing.T) {
	h := newHarness(func(o *Options) { o.StartingCoins = 3 })
	h.openRiddleLevel()

	if h.session.RevealHint(2, 0) {
		t.Error("expected reveal to fail with insufficient balance")
	}
	if h.session.WalletBalance() != 3 {
		t.Errorf("expected balance 3, got %d", h.session.WalletBalance())
	}
}

func TestSession_RewardClampedAtZero(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()
	h.session.RevealHint(2, 1)
	h.sched.Advance(50 * time.Second)

	res := h.session.SubmitAnswer(2, 2)
	if res.EarnedCoins != 0 || res.BonusPoints != 0 {
		t.Errorf("expected clamped reward, got %+v", res)
	}
	if h.session.WalletBalance() != 50 {
		t.Errorf("expected balance 50, got %d", h.session.WalletBalance())
	}
}

func TestSession_ZeroTimeStillAcceptsAnswer(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()
	h.sched.Advance(5 * time.Minute)

	snap, _ := h.session.Attempt(2)
	if snap.Remaining != 0 || snap.Outcome != domain.OutcomeUnresolved {
		t.Fatalf("timer expiry must not resolve the attempt: %+v", snap)
	}
	if h.sched.pending() != 0 {
		t.Errorf("countdown should stop scheduling at zero, %d tasks pending", h.sched.pending())
	}

	res := h.session.SubmitAnswer(2, 2)
	if res.Outcome != domain.OutcomeCorrect || res.EarnedCoins != 10 || res.BonusPoints != 0 {
		t.Errorf("unexpected resolution: %+v", res)
	}
}

func TestSession_CloseLevelSuppressesAdvance(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()
	h.session.SubmitAnswer(2, 1)

	if !h.session.CloseLevel(2) {
		t.Fatal("expected close to succeed")
	}
	h.sched.Advance(10 * time.Second)

	status, _ := h.session.tracker.LevelStatus(1, 2)
	if status != domain.LevelAvailable {
		t.Errorf("incorrect answer must not advance, level 2 is %s", status)
	}
	if h.sink.has(domain.EventAttemptReset) {
		t.Error("reset callback must be suppressed after teardown")
	}
	if h.sched.pending() != 0 {
		t.Errorf("expected no pending tasks, got %d", h.sched.pending())
	}
}

func TestSession_CloseDuringSettleCompletesPaidLevel(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()
	h.session.SubmitAnswer(2, 2)

	if !h.session.CloseLevel(2) {
		t.Fatal("expected close to succeed")
	}
	if h.sched.pending() != 0 {
		t.Errorf("settle callback should be cancelled, got %d pending", h.sched.pending())
	}
	h.sched.Advance(10 * time.Second)

	m, _ := h.session.Mission(1)
	if m.Levels[1].Status != domain.LevelCompleted || m.Levels[2].Status != domain.LevelAvailable {
		t.Errorf("paid level should complete on teardown, got %+v", m.Levels)
	}
	if n := h.sink.count(domain.EventLevelCompleted); n != 2 {
		t.Errorf("expected level_completed for levels 1 and 2 only, got %d", n)
	}
}

func TestSession_CorrectAnswerPaysOnce(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()

	for i := 0; i < 5; i++ {
		h.session.SubmitAnswer(2, 2)
		h.session.CloseLevel(2)
		if _, ok := h.session.OpenLevel(1, 2); ok {
			t.Fatalf("round %d: completed level must not reopen", i)
		}
	}

	if got := h.session.WalletBalance(); got != 120 {
		t.Errorf("expected one payout (balance 120), got %d", got)
	}
	st := h.session.Stats()
	if st.RiddlesSolved != 1 || st.BonusPoints != FastTimeBonus || st.PerfectSolves != 1 {
		t.Errorf("stats counted more than one solve: %+v", st)
	}
	if got := h.session.Points(); got != 10+15+FastTimeBonus {
		t.Errorf("Points() = %d", got)
	}
}

func TestSession_OpenNextLevelDuringSettle(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()
	h.session.SubmitAnswer(2, 2)

	op, ok := h.session.OpenLevel(1, 3)
	if !ok || !op.Completed {
		t.Fatalf("level 3 should open once level 2 settles early, got %+v ok=%v", op, ok)
	}
	if status, _ := h.session.tracker.LevelStatus(1, 2); status != domain.LevelCompleted {
		t.Errorf("level 2 should be completed, got %s", status)
	}
}

func TestSession_ReadsRefreshActivity(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()

	reads := map[string]func(){
		"Attempt":       func() { h.session.Attempt(2) },
		"Missions":      func() { h.session.Missions() },
		"Mission":       func() { h.session.Mission(1) },
		"MissionStatus": func() { h.session.MissionStatus(1) },
		"WalletBalance": func() { h.session.WalletBalance() },
		"Stats":         func() { h.session.Stats() },
		"Points":        func() { h.session.Points() },
		"GateRiddle":    func() { h.session.GateRiddle() },
	}
	for name, read := range reads {
		h.clock.Add(time.Minute)
		read()
		if got := h.session.LastActive(); !got.Equal(h.clock.Now()) {
			t.Errorf("%s did not refresh activity: last=%v now=%v", name, got, h.clock.Now())
		}
	}
}

func TestSession_OpeningAnotherLevelTearsDown(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()
	h.session.SubmitAnswer(2, 1)

	if _, ok := h.session.OpenLevel(2, 1); !ok {
		t.Fatal("mission 2 level 1 should open")
	}
	h.sched.Advance(5 * time.Second)

	if _, ok := h.session.Attempt(2); ok {
		t.Error("previous attempt should be gone")
	}
	if h.sink.has(domain.EventAttemptReset) {
		t.Error("reset callback must be suppressed after teardown")
	}
}

func TestSession_ReopenSameLevelKeepsAttempt(t *testing.T) {
	h := newHarness(nil)
	first := h.openRiddleLevel()
	h.sched.Advance(5 * time.Second)

	again, ok := h.session.OpenLevel(1, 2)
	if !ok || again.Attempt.AttemptID != first.Attempt.AttemptID || again.Attempt.Remaining != 55 {
		t.Errorf("expected existing attempt, got %+v", again.Attempt)
	}
}

func TestSession_WrongLevelRejected(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()

	if h.session.RevealHint(3, 0) {
		t.Error("hint for inactive level must fail")
	}
	if res := h.session.SubmitAnswer(3, 2); res.Outcome != domain.OutcomeRejected {
		t.Errorf("expected rejection, got %s", res.Outcome)
	}
}

func TestSession_GateFlow(t *testing.T) {
	h := newHarness(func(o *Options) { o.GateRequired = true })

	if _, ok := h.session.OpenLevel(1, 1); ok {
		t.Fatal("missions must be locked before the gate")
	}
	if res := h.session.SubmitGateAnswer(1); res.Outcome != domain.OutcomeIncorrect {
		t.Fatalf("expected incorrect, got %s", res.Outcome)
	}
	if res := h.session.SubmitGateAnswer(2); res.Outcome != domain.OutcomeRejected {
		t.Fatalf("expected rejection while pending, got %s", res.Outcome)
	}
	h.sched.Advance(3 * time.Second)

	if res := h.session.SubmitGateAnswer(2); res.Outcome != domain.OutcomeCorrect {
		t.Fatalf("expected correct, got %s", res.Outcome)
	}
	_, state := h.session.GateRiddle()
	if state.Solved || !state.Pending {
		t.Fatalf("gate should be pending, got %+v", state)
	}

	h.sched.Advance(2 * time.Second)
	_, state = h.session.GateRiddle()
	if !state.Solved {
		t.Fatal("gate should be solved")
	}
	s, _ := h.session.MissionStatus(1)
	if s.Status != domain.MissionAvailable {
		t.Errorf("expected mission 1 available, got %s", s.Status)
	}
	s3, _ := h.session.MissionStatus(3)
	if s3.Status != domain.MissionLocked {
		t.Errorf("mission 3 keeps its own prerequisite, got %s", s3.Status)
	}
	if res := h.session.SubmitGateAnswer(2); res.Outcome != domain.OutcomeRejected {
		t.Errorf("solved gate must reject, got %s", res.Outcome)
	}
	if !h.session.Stats().GateSolved {
		t.Error("expected gate stat")
	}
}

func TestSession_CloseRejectsEverything(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()
	h.session.SubmitAnswer(2, 2)
	h.session.Close()
	h.sched.Advance(time.Minute)

	status, _ := h.session.tracker.LevelStatus(1, 2)
	if status != domain.LevelCompleted {
		t.Errorf("paid level should complete when the session closes, got %s", status)
	}
	if h.sched.pending() != 0 {
		t.Errorf("expected no pending tasks, got %d", h.sched.pending())
	}
	if _, ok := h.session.OpenLevel(1, 3); ok {
		t.Error("closed session must not open levels")
	}
}

func TestSession_StatsAndAchievements(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()
	h.session.SubmitAnswer(2, 2)
	h.sched.Advance(3 * time.Second)

	st := h.session.Stats()
	if st.RiddlesSolved != 1 || st.PerfectSolves != 1 || st.QuickSolves != 1 || st.LevelsCompleted != 2 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if h.session.Points() != 10+15+10 {
		t.Errorf("unexpected points: %d", h.session.Points())
	}

	unlocked := map[string]bool{}
	for _, a := range Achievements(st) {
		unlocked[a.ID] = a.Unlocked
	}
	if !unlocked["first_riddle"] || !unlocked["quick_thinker"] || unlocked["mission_complete"] {
		t.Errorf("unexpected achievements: %v", unlocked)
	}
}

func TestSession_EventsCarryUserAndBalance(t *testing.T) {
	h := newHarness(nil)
	h.openRiddleLevel()
	h.session.RevealHint(2, 0)

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	last := h.sink.events[len(h.sink.events)-1]
	if last.Kind != domain.EventHintRevealed || last.UserID != "user-1" || last.Balance != 95 || last.Coins != 5 {
		t.Errorf("unexpected event: %+v", last)
	}
	if last.ID == "" {
		t.Error("expected event id")
	}
}
