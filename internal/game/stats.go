package game

import "github.com/ashureev/arctic-quest/internal/domain"

// Stats accumulates per-session counters used by the dashboard.
type Stats struct {
	RiddlesSolved     int  `json:"riddles_solved"`
	WrongAnswers      int  `json:"wrong_answers"`
	PerfectSolves     int  `json:"perfect_solves"`
	QuickSolves       int  `json:"quick_solves"`
	HintsBought       int  `json:"hints_bought"`
	CoinsEarned       int  `json:"coins_earned"`
	CoinsSpent        int  `json:"coins_spent"`
	BonusPoints       int  `json:"bonus_points"`
	LevelsCompleted   int  `json:"levels_completed"`
	MissionsCompleted int  `json:"missions_completed"`
	GateSolved        bool `json:"gate_solved"`
}

// Achievements derives the badge list from session statistics.
func Achievements(st Stats) []domain.Achievement {
	return []domain.Achievement{
		{ID: "gate_keeper", Title: "Opened the Arctic gate", Unlocked: st.GateSolved},
		{ID: "first_riddle", Title: "Solved a first riddle", Unlocked: st.RiddlesSolved > 0},
		{ID: "self_reliant", Title: "Solved a riddle without hints", Unlocked: st.PerfectSolves > 0},
		{ID: "quick_thinker", Title: "Earned the top time bonus", Unlocked: st.QuickSolves > 0},
		{ID: "curious_mind", Title: "Bought a hint", Unlocked: st.HintsBought > 0},
		{ID: "mission_complete", Title: "Completed a mission", Unlocked: st.MissionsCompleted > 0},
	}
}
