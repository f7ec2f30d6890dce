// Package catalog provides the static riddle and mission content.
package catalog

import (
	"fmt"
	"slices"

	"github.com/ashureev/arctic-quest/internal/domain"
)

// Catalog is an immutable lookup from level id to riddle plus the mission layout.
type Catalog struct {
	riddles  map[int]domain.Riddle
	gate     domain.Riddle
	missions []domain.MissionTemplate
}

// New validates the content and builds a catalog.
func New(riddles map[int]domain.Riddle, gate domain.Riddle, missions []domain.MissionTemplate) (*Catalog, error) {
	for levelID, r := range riddles {
		if err := validateRiddle(r); err != nil {
			return nil, fmt.Errorf("riddle for level %d: %w", levelID, err)
		}
	}
	if err := validateGate(gate); err != nil {
		return nil, fmt.Errorf("gate riddle: %w", err)
	}
	seen := make(map[int]bool, len(missions))
	for _, m := range missions {
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate mission id %d", m.ID)
		}
		seen[m.ID] = true
		if len(m.Levels) == 0 {
			return nil, fmt.Errorf("mission %d has no levels", m.ID)
		}
		if m.RequiredLevels < 0 {
			return nil, fmt.Errorf("mission %d: required levels must be >= 0", m.ID)
		}
	}

	c := &Catalog{
		riddles:  make(map[int]domain.Riddle, len(riddles)),
		gate:     cloneRiddle(gate),
		missions: cloneMissions(missions),
	}
	for k, v := range riddles {
		c.riddles[k] = cloneRiddle(v)
	}
	return c, nil
}

// cloneRiddle copies the answer and hint slices so callers never share
// backing arrays with the catalog.
func cloneRiddle(r domain.Riddle) domain.Riddle {
	r.Answers = slices.Clone(r.Answers)
	r.Hints = slices.Clone(r.Hints)
	return r
}

func cloneMission(m domain.MissionTemplate) domain.MissionTemplate {
	m.Levels = slices.Clone(m.Levels)
	return m
}

func cloneMissions(missions []domain.MissionTemplate) []domain.MissionTemplate {
	out := make([]domain.MissionTemplate, len(missions))
	for i, m := range missions {
		out[i] = cloneMission(m)
	}
	return out
}

func validateGate(r domain.Riddle) error {
	if len(r.Answers) == 0 {
		return fmt.Errorf("no answers")
	}
	return validateAnswers(r.Answers)
}

func validateRiddle(r domain.Riddle) error {
	if r.TimeLimit <= 0 {
		return fmt.Errorf("time limit must be > 0, got %d", r.TimeLimit)
	}
	if r.BaseReward < 0 {
		return fmt.Errorf("base reward must be >= 0, got %d", r.BaseReward)
	}
	for i, h := range r.Hints {
		if h.Cost < 0 {
			return fmt.Errorf("hint %d cost must be >= 0", i)
		}
	}
	return validateAnswers(r.Answers)
}

func validateAnswers(answers []domain.Answer) error {
	correct := 0
	ids := make(map[int]bool, len(answers))
	for _, a := range answers {
		if ids[a.ID] {
			return fmt.Errorf("duplicate answer id %d", a.ID)
		}
		ids[a.ID] = true
		if a.Correct {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("expected exactly one correct answer, got %d", correct)
	}
	return nil
}

// Lookup returns the riddle gating the given level, if any.
func (c *Catalog) Lookup(levelID int) (domain.Riddle, bool) {
	r, ok := c.riddles[levelID]
	if !ok {
		return domain.Riddle{}, false
	}
	return cloneRiddle(r), true
}

// Gate returns the riddle that unlocks all missions.
func (c *Catalog) Gate() domain.Riddle {
	return cloneRiddle(c.gate)
}

// Missions returns the mission templates in display order.
func (c *Catalog) Missions() []domain.MissionTemplate {
	return cloneMissions(c.missions)
}

// Mission returns a single mission template.
func (c *Catalog) Mission(id int) (domain.MissionTemplate, bool) {
	for _, m := range c.missions {
		if m.ID == id {
			return cloneMission(m), true
		}
	}
	return domain.MissionTemplate{}, false
}
