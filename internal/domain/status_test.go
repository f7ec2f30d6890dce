package domain

import "testing"

func TestLevelStatus_Unlock(t *testing.T) {
	tests := []struct {
		from    LevelStatus
		want    LevelStatus
		changed bool
	}{
		{LevelLocked, LevelAvailable, true},
		{LevelAvailable, LevelAvailable, false},
		{LevelCompleted, LevelCompleted, false},
	}
	for _, tt := range tests {
		got, changed := tt.from.Unlock()
		if got != tt.want || changed != tt.changed {
			t.Errorf("%s.Unlock() = %s, %v; want %s, %v", tt.from, got, changed, tt.want, tt.changed)
		}
	}
}

func TestLevelStatus_Complete(t *testing.T) {
	tests := []struct {
		from    LevelStatus
		want    LevelStatus
		changed bool
	}{
		{LevelLocked, LevelLocked, false},
		{LevelAvailable, LevelCompleted, true},
		{LevelCompleted, LevelCompleted, false},
	}
	for _, tt := range tests {
		got, changed := tt.from.Complete()
		if got != tt.want || changed != tt.changed {
			t.Errorf("%s.Complete() = %s, %v; want %s, %v", tt.from, got, changed, tt.want, tt.changed)
		}
	}
}

func TestDeriveMissionStatus(t *testing.T) {
	tests := []struct {
		name      string
		unlocked  bool
		completed int
		total     int
		want      MissionStatus
	}{
		{"locked ignores progress", false, 2, 4, MissionLocked},
		{"fresh", true, 0, 4, MissionAvailable},
		{"partial", true, 2, 4, MissionInProgress},
		{"done", true, 4, 4, MissionCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveMissionStatus(tt.unlocked, tt.completed, tt.total); got != tt.want {
				t.Errorf("DeriveMissionStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRiddle_PublicHidesCorrectness(t *testing.T) {
	r := Riddle{
		ID:       "r",
		Question: "q",
		Answers:  []Answer{{ID: 1, Text: "a", Correct: true, Explanation: "e"}},
		Hints:    []Hint{{Text: "secret", Cost: 5}},
	}
	pub := r.Public()
	if len(pub.Answers) != 1 || pub.Answers[0].Text != "a" {
		t.Fatalf("unexpected answers: %+v", pub.Answers)
	}
	if len(pub.Hints) != 1 || pub.Hints[0].Cost != 5 || pub.Hints[0].Index != 0 {
		t.Fatalf("unexpected hints: %+v", pub.Hints)
	}
}

func TestRiddle_HintCost(t *testing.T) {
	r := Riddle{Hints: []Hint{{Cost: 5}}}
	if c, ok := r.HintCost(0); !ok || c != 5 {
		t.Errorf("HintCost(0) = %d, %v", c, ok)
	}
	if _, ok := r.HintCost(1); ok {
		t.Error("expected out of range index to fail")
	}
	if _, ok := r.HintCost(-1); ok {
		t.Error("expected negative index to fail")
	}
}
