package game

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ashureev/arctic-quest/internal/catalog"
	"github.com/ashureev/arctic-quest/internal/domain"
	"github.com/google/uuid"
)

// Options configures new sessions.
type Options struct {
	StartingCoins  int
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration
	GateDelay      time.Duration
	TickInterval   time.Duration
	GateRequired   bool
	Scheduler      Scheduler
	Sink           EventSink
	Now            func() time.Time
	Logger         *slog.Logger
}

// DefaultOptions mirrors the product timings.
func DefaultOptions() Options {
	return Options{
		StartingCoins:  100,
		CorrectDelay:   2500 * time.Millisecond,
		IncorrectDelay: 3000 * time.Millisecond,
		GateDelay:      2000 * time.Millisecond,
		TickInterval:   time.Second,
		GateRequired:   true,
	}
}

func (o Options) withDefaults() Options {
	if o.Scheduler == nil {
		o.Scheduler = RealScheduler
	}
	if o.Sink == nil {
		o.Sink = nopSink{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	return o
}

// Opening is the result of opening a level.
type Opening struct {
	MissionID int
	LevelID   int
	// Riddle is nil for levels without a riddle; those complete on open.
	Riddle    *domain.PublicRiddle
	Attempt   *AttemptSnapshot
	Completed bool
	Advance   *Advance
}

// GateState is the progress on the gate riddle.
type GateState struct {
	Solved  bool `json:"solved"`
	Pending bool `json:"pending"`
}

// Session is one player's game: wallet, progression and the active attempt.
// All methods are safe for concurrent use; state changes are serialized.
type Session struct {
	mu      sync.Mutex
	userID  string
	catalog *catalog.Catalog
	opts    Options
	log     *slog.Logger

	wallet  *Wallet
	tracker *Tracker
	stats   Stats

	attempt *Attempt
	epoch   uint64
	settle  Task
	tick    Task
	tickSeq uint64

	gatePending bool
	gateTask    Task

	lastActive time.Time
	closed     bool
	outbox     []domain.Event
}

// NewSession creates a fresh session for userID.
func NewSession(userID string, cat *catalog.Catalog, opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		userID:     userID,
		catalog:    cat,
		opts:       opts,
		log:        opts.Logger.With("user_id", userID),
		wallet:     NewWallet(opts.StartingCoins),
		tracker:    NewTracker(cat.Missions(), !opts.GateRequired),
		lastActive: opts.Now(),
	}
}

func (s *Session) lock() {
	s.mu.Lock()
}

// unlock releases the session and publishes events queued while it was held.
func (s *Session) unlock() {
	events := s.outbox
	s.outbox = nil
	s.mu.Unlock()
	for _, e := range events {
		s.opts.Sink.Publish(e)
	}
}

func (s *Session) emit(kind domain.EventKind, missionID, levelID, coins, bonus int) {
	s.outbox = append(s.outbox, domain.Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		UserID:    s.userID,
		MissionID: missionID,
		LevelID:   levelID,
		Coins:     coins,
		Bonus:     bonus,
		Balance:   s.wallet.Balance(),
		At:        s.opts.Now(),
	})
}

func (s *Session) touch() {
	s.lastActive = s.opts.Now()
}

// UserID returns the owning player's id.
func (s *Session) UserID() string { return s.userID }

// LastActive returns the time of the last player-initiated call.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// OpenLevel presents a level. It returns false when the mission is locked
// or the level is not available. Levels without a riddle are completed
// immediately. Opening the level that is already active returns the
// existing attempt; opening another level tears the current one down.
func (s *Session) OpenLevel(missionID, levelID int) (Opening, bool) {
	s.lock()
	defer s.unlock()
	s.touch()

	if s.closed {
		return Opening{}, false
	}
	if a := s.attempt; a != nil && a.MissionID == missionID && a.LevelID == levelID {
		pub := a.Riddle.Public()
		snap := a.Snapshot()
		return Opening{MissionID: missionID, LevelID: levelID, Riddle: &pub, Attempt: &snap}, true
	}
	if a := s.attempt; a != nil && a.outcome == domain.OutcomeCorrect {
		s.teardownLocked()
	}
	if !s.tracker.CanOpen(missionID, levelID) {
		return Opening{}, false
	}
	s.teardownLocked()

	riddle, ok := s.catalog.Lookup(levelID)
	if !ok {
		adv, done := s.completeLocked(missionID, levelID)
		if !done {
			return Opening{}, false
		}
		return Opening{MissionID: missionID, LevelID: levelID, Completed: true, Advance: &adv}, true
	}

	s.attempt = newAttempt(missionID, levelID, riddle)
	s.scheduleTickLocked()
	s.emit(domain.EventLevelOpened, missionID, levelID, 0, 0)
	s.log.Info("Level opened", "mission_id", missionID, "level_id", levelID, "attempt_id", s.attempt.ID)

	pub := riddle.Public()
	snap := s.attempt.Snapshot()
	return Opening{MissionID: missionID, LevelID: levelID, Riddle: &pub, Attempt: &snap}, true
}

// RevealHint buys a hint for the active attempt on levelID.
func (s *Session) RevealHint(levelID, hintIndex int) bool {
	s.lock()
	defer s.unlock()
	s.touch()

	a := s.attempt
	if s.closed || a == nil || a.LevelID != levelID || a.Pending() {
		return false
	}
	cost, ok := a.Riddle.HintCost(hintIndex)
	if !ok || !a.hints.Reveal(hintIndex, s.wallet) {
		return false
	}
	s.stats.HintsBought++
	s.stats.CoinsSpent += cost
	s.emit(domain.EventHintRevealed, a.MissionID, a.LevelID, cost, 0)
	return true
}

// SubmitAnswer evaluates answerID against the active attempt on levelID.
func (s *Session) SubmitAnswer(levelID, answerID int) Resolution {
	s.lock()
	defer s.unlock()
	s.touch()

	a := s.attempt
	if s.closed || a == nil || a.LevelID != levelID {
		return Resolution{Outcome: domain.OutcomeRejected}
	}
	res := a.Evaluate(answerID, s.wallet)
	if res.Outcome == domain.OutcomeRejected {
		return res
	}
	s.stopTickLocked()

	epoch := s.epoch
	switch res.Outcome {
	case domain.OutcomeCorrect:
		s.stats.RiddlesSolved++
		s.stats.CoinsEarned += res.EarnedCoins
		s.stats.BonusPoints += res.BonusPoints
		if res.HintsSpent == 0 {
			s.stats.PerfectSolves++
		}
		if res.BonusPoints == FastTimeBonus {
			s.stats.QuickSolves++
		}
		s.emit(domain.EventAnswerCorrect, a.MissionID, a.LevelID, res.EarnedCoins, res.BonusPoints)
		s.settle = s.opts.Scheduler.AfterFunc(s.opts.CorrectDelay, func() { s.onSettled(epoch) })
		s.log.Info("Answer correct", "level_id", levelID, "earned_coins", res.EarnedCoins, "bonus_points", res.BonusPoints)
	case domain.OutcomeIncorrect:
		s.stats.WrongAnswers++
		s.emit(domain.EventAnswerIncorrect, a.MissionID, a.LevelID, 0, 0)
		s.settle = s.opts.Scheduler.AfterFunc(s.opts.IncorrectDelay, func() { s.onRetry(epoch) })
		s.log.Info("Answer incorrect", "level_id", levelID, "answer_id", answerID)
	}
	return res
}

func (s *Session) onSettled(epoch uint64) {
	s.lock()
	defer s.unlock()

	if s.closed || epoch != s.epoch || s.attempt == nil {
		return
	}
	s.settle = nil
	s.teardownLocked()
}

func (s *Session) onRetry(epoch uint64) {
	s.lock()
	defer s.unlock()

	if s.closed || epoch != s.epoch || s.attempt == nil {
		return
	}
	s.settle = nil
	s.attempt.Reset()
	s.scheduleTickLocked()
	s.emit(domain.EventAttemptReset, s.attempt.MissionID, s.attempt.LevelID, 0, 0)
}

func (s *Session) completeLocked(missionID, levelID int) (Advance, bool) {
	adv, ok := s.tracker.Complete(missionID, levelID)
	if !ok {
		return Advance{}, false
	}
	s.stats.LevelsCompleted++
	s.emit(domain.EventLevelCompleted, missionID, levelID, 0, adv.Points)
	if adv.NextLevelID != 0 {
		s.emit(domain.EventLevelUnlocked, missionID, adv.NextLevelID, 0, 0)
	}
	if adv.MissionCompleted {
		s.stats.MissionsCompleted++
		s.emit(domain.EventMissionCompleted, missionID, 0, 0, 0)
	}
	for _, id := range adv.UnlockedMissions {
		s.emit(domain.EventMissionUnlocked, id, 0, 0, 0)
	}
	s.log.Info("Level completed", "mission_id", missionID, "level_id", levelID, "next_level_id", adv.NextLevelID)
	return adv, true
}

func (s *Session) scheduleTickLocked() {
	s.stopTickLocked()
	seq := s.tickSeq
	epoch := s.epoch
	s.tick = s.opts.Scheduler.AfterFunc(s.opts.TickInterval, func() { s.onTick(epoch, seq) })
}

func (s *Session) stopTickLocked() {
	if s.tick != nil {
		s.tick.Stop()
		s.tick = nil
	}
	s.tickSeq++
}

func (s *Session) onTick(epoch, seq uint64) {
	s.lock()
	defer s.unlock()

	if s.closed || epoch != s.epoch || seq != s.tickSeq || s.attempt == nil {
		return
	}
	s.tick = nil
	if s.attempt.countdown.Tick() {
		s.scheduleTickLocked()
	}
}

// teardownLocked discards the active attempt and suppresses its pending
// callbacks. A correctly answered attempt has already been paid, so its level
// completes now instead of waiting for the settle delay.
func (s *Session) teardownLocked() {
	a := s.attempt
	s.stopTickLocked()
	if s.settle != nil {
		s.settle.Stop()
		s.settle = nil
	}
	s.epoch++
	s.attempt = nil
	if a != nil && a.outcome == domain.OutcomeCorrect {
		s.completeLocked(a.MissionID, a.LevelID)
	}
}

// CloseLevel tears down the view of levelID. Pending deferred transitions
// for it never fire.
func (s *Session) CloseLevel(levelID int) bool {
	s.lock()
	defer s.unlock()
	s.touch()

	if s.attempt == nil || s.attempt.LevelID != levelID {
		return false
	}
	s.teardownLocked()
	return true
}

// Attempt returns the active attempt on levelID.
func (s *Session) Attempt(levelID int) (AttemptSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.attempt == nil || s.attempt.LevelID != levelID {
		return AttemptSnapshot{}, false
	}
	return s.attempt.Snapshot(), true
}

// WalletBalance returns the coin balance.
func (s *Session) WalletBalance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.wallet.Balance()
}

// SubscribeBalance registers fn for balance changes.
func (s *Session) SubscribeBalance(fn func(balance int)) func() {
	return s.wallet.Subscribe(fn)
}

// MissionStatus returns the aggregate status of a mission.
func (s *Session) MissionStatus(missionID int) (domain.MissionSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.tracker.Summary(missionID)
}

// Mission returns one mission with its level statuses.
func (s *Session) Mission(missionID int) (domain.Mission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.tracker.Mission(missionID)
}

// Missions returns every mission with its level statuses.
func (s *Session) Missions() []domain.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.tracker.Missions()
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.stats
}

// Points returns the progression score: level points plus time bonus points.
func (s *Session) Points() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.tracker.Points() + s.stats.BonusPoints
}

// GateRiddle returns the gate riddle and the player's progress on it.
func (s *Session) GateRiddle() (domain.PublicRiddle, GateState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	r := s.catalog.Gate()
	return r.Public(), GateState{Solved: s.tracker.GateOpen(), Pending: s.gatePending}
}

// SubmitGateAnswer evaluates an answer to the gate riddle. A correct answer
// opens every mission after the gate delay.
func (s *Session) SubmitGateAnswer(answerID int) Resolution {
	s.lock()
	defer s.unlock()
	s.touch()

	if s.closed || s.tracker.GateOpen() || s.gatePending {
		return Resolution{Outcome: domain.OutcomeRejected}
	}
	gate := s.catalog.Gate()
	answer, ok := gate.AnswerByID(answerID)
	s.gatePending = true

	res := Resolution{AnswerID: answerID, Explanation: answer.Explanation}
	if ok && answer.Correct {
		res.Outcome = domain.OutcomeCorrect
		s.gateTask = s.opts.Scheduler.AfterFunc(s.opts.GateDelay, s.onGateSolved)
		return res
	}
	res.Outcome = domain.OutcomeIncorrect
	s.stats.WrongAnswers++
	s.gateTask = s.opts.Scheduler.AfterFunc(s.opts.IncorrectDelay, s.onGateRetry)
	return res
}

func (s *Session) onGateSolved() {
	s.lock()
	defer s.unlock()

	if s.closed || !s.gatePending {
		return
	}
	s.gatePending = false
	s.gateTask = nil
	unlocked := s.tracker.OpenGate()
	s.stats.GateSolved = true
	s.emit(domain.EventGateSolved, 0, 0, 0, 0)
	for _, id := range unlocked {
		s.emit(domain.EventMissionUnlocked, id, 0, 0, 0)
	}
	s.log.Info("Gate solved", "unlocked_missions", len(unlocked))
}

func (s *Session) onGateRetry() {
	s.lock()
	defer s.unlock()

	if s.closed {
		return
	}
	s.gatePending = false
	s.gateTask = nil
}

// Close ends the session. Every pending callback is suppressed and later
// calls are rejected.
func (s *Session) Close() {
	s.lock()
	defer s.unlock()

	if s.closed {
		return
	}
	s.teardownLocked()
	if s.gateTask != nil {
		s.gateTask.Stop()
		s.gateTask = nil
	}
	s.closed = true
}
