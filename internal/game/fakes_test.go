package game

import (
	"sync"
	"time"

	"github.com/ashureev/arctic-quest/internal/catalog"
	"github.com/ashureev/arctic-quest/internal/domain"
)

type fakeTask struct {
	at      time.Duration
	fn      func()
	fired   bool
	stopped bool
	sched   *fakeScheduler
}

func (t *fakeTask) Stop() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler fires deferred callbacks only when Advance moves its clock.
type fakeScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*fakeTask
}

func (f *fakeScheduler) AfterFunc(d time.Duration, fn func()) Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTask{at: f.now + d, fn: fn, sched: f}
	f.tasks = append(f.tasks, t)
	return t
}

func (f *fakeScheduler) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		var next *fakeTask
		for _, t := range f.tasks {
			if t.fired || t.stopped || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		next.fired = true
		f.now = next.at
		f.mu.Unlock()
		next.fn()
	}
}

func (f *fakeScheduler) pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordingSink) Publish(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) kinds() []domain.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recordingSink) has(kind domain.EventKind) bool {
	return r.count(kind) > 0
}

func (r *recordingSink) count(kind domain.EventKind) int {
	n := 0
	for _, k := range r.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testRiddle() domain.Riddle {
	return domain.Riddle{
		ID:       "test",
		Question: "Which one?",
		Answers: []domain.Answer{
			{ID: 1, Text: "wrong", Explanation: "no"},
			{ID: 2, Text: "right", Correct: true, Explanation: "yes"},
		},
		Hints: []domain.Hint{
			{Text: "cheap", Cost: 5},
			{Text: "pricey", Cost: 50},
		},
		TimeLimit:  60,
		BaseReward: 10,
	}
}

func testMissions() []domain.MissionTemplate {
	return []domain.MissionTemplate{
		{
			ID: 1,
			Levels: []domain.LevelTemplate{
				{ID: 1, Points: 10}, {ID: 2, Points: 15}, {ID: 3, Points: 20}, {ID: 4, Points: 25},
			},
		},
		{
			ID:     2,
			Levels: []domain.LevelTemplate{{ID: 1, Points: 10}, {ID: 2, Points: 20}},
		},
		{
			ID:             3,
			RequiredLevels: 2,
			Levels:         []domain.LevelTemplate{{ID: 1, Points: 10}, {ID: 2, Points: 15}},
		},
	}
}

func testCatalog() *catalog.Catalog {
	gate := domain.Riddle{
		ID: "gate",
		Answers: []domain.Answer{
			{ID: 1, Text: "no"},
			{ID: 2, Text: "yes", Correct: true},
		},
	}
	c, err := catalog.New(map[int]domain.Riddle{2: testRiddle()}, gate, testMissions())
	if err != nil {
		panic(err)
	}
	return c
}

type harness struct {
	session *Session
	sched   *fakeScheduler
	sink    *recordingSink
	clock   *fakeClock
}

func newHarness(mutate func(*Options)) *harness {
	h := &harness{
		sched: &fakeScheduler{},
		sink:  &recordingSink{},
		clock: &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	opts := DefaultOptions()
	opts.GateRequired = false
	opts.Scheduler = h.sched
	opts.Sink = h.sink
	opts.Now = h.clock.Now
	if mutate != nil {
		mutate(&opts)
	}
	h.session = NewSession("user-1", testCatalog(), opts)
	return h
}

// openRiddleLevel completes level 1 of mission 1 and opens level 2.
func (h *harness) openRiddleLevel() Opening {
	if _, ok := h.session.OpenLevel(1, 1); !ok {
		panic("level 1 should open")
	}
	op, ok := h.session.OpenLevel(1, 2)
	if !ok {
		panic("level 2 should open")
	}
	return op
}
