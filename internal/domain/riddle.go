package domain

// Answer is one candidate answer of a riddle.
type Answer struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

// Hint is a paid reveal attached to a riddle.
type Hint struct {
	Text string `json:"text"`
	Cost int    `json:"cost"`
}

// Difficulty labels a riddle for presentation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Riddle is an immutable multiple-choice question gating a level.
type Riddle struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Difficulty Difficulty `json:"difficulty"`
	Answers    []Answer   `json:"answers"`
	Hints      []Hint     `json:"hints"`
	TimeLimit  int        `json:"time_limit"`
	BaseReward int        `json:"base_reward"`
}

// AnswerByID returns the answer with the given id.
func (r *Riddle) AnswerByID(id int) (Answer, bool) {
	for _, a := range r.Answers {
		if a.ID == id {
			return a, true
		}
	}
	return Answer{}, false
}

// HintCost returns the cost of the hint at index, or false when out of range.
func (r *Riddle) HintCost(index int) (int, bool) {
	if index < 0 || index >= len(r.Hints) {
		return 0, false
	}
	return r.Hints[index].Cost, true
}

// PublicAnswer is an answer without its correctness flag or explanation.
type PublicAnswer struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// PublicHint describes a hint before it has been bought.
type PublicHint struct {
	Index int `json:"index"`
	Cost  int `json:"cost"`
}

// PublicRiddle is the view of a riddle handed to clients.
type PublicRiddle struct {
	ID         string         `json:"id"`
	Question   string         `json:"question"`
	Difficulty Difficulty     `json:"difficulty"`
	Answers    []PublicAnswer `json:"answers"`
	Hints      []PublicHint   `json:"hints"`
	TimeLimit  int            `json:"time_limit"`
	BaseReward int            `json:"base_reward"`
}

// Public strips answer correctness and hint text.
func (r *Riddle) Public() PublicRiddle {
	answers := make([]PublicAnswer, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, PublicAnswer{ID: a.ID, Text: a.Text})
	}
	hints := make([]PublicHint, 0, len(r.Hints))
	for i, h := range r.Hints {
		hints = append(hints, PublicHint{Index: i, Cost: h.Cost})
	}
	return PublicRiddle{
		ID:         r.ID,
		Question:   r.Question,
		Difficulty: r.Difficulty,
		Answers:    answers,
		Hints:      hints,
		TimeLimit:  r.TimeLimit,
		BaseReward: r.BaseReward,
	}
}
