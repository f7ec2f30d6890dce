package game

import "github.com/ashureev/arctic-quest/internal/domain"

type missionState struct {
	tmpl     domain.MissionTemplate
	levels   []domain.LevelStatus
	unlocked bool
}

func (m *missionState) completed() int {
	n := 0
	for _, s := range m.levels {
		if s == domain.LevelCompleted {
			n++
		}
	}
	return n
}

func (m *missionState) levelIndex(levelID int) int {
	for i, l := range m.tmpl.Levels {
		if l.ID == levelID {
			return i
		}
	}
	return -1
}

// Advance describes everything a level completion changed.
type Advance struct {
	MissionID        int
	LevelID          int
	Points           int
	NextLevelID      int
	MissionCompleted bool
	UnlockedMissions []int
}

// Tracker holds per-mission level unlock state.
type Tracker struct {
	missions []*missionState
	gateOpen bool
}

// NewTracker builds a tracker from mission templates. The first level of a
// mission without prerequisites starts available; every other level starts
// locked. Missions stay locked until gateOpen is true and their own
// prerequisite is met.
func NewTracker(templates []domain.MissionTemplate, gateOpen bool) *Tracker {
	t := &Tracker{
		missions: make([]*missionState, 0, len(templates)),
		gateOpen: gateOpen,
	}
	for _, tmpl := range templates {
		ms := &missionState{
			tmpl:   tmpl,
			levels: make([]domain.LevelStatus, len(tmpl.Levels)),
		}
		for i := range ms.levels {
			ms.levels[i] = domain.LevelLocked
		}
		if tmpl.RequiredLevels == 0 && len(ms.levels) > 0 {
			ms.levels[0] = domain.LevelAvailable
		}
		t.missions = append(t.missions, ms)
	}
	t.refreshGating()
	return t
}

func (t *Tracker) mission(id int) *missionState {
	for _, m := range t.missions {
		if m.tmpl.ID == id {
			return m
		}
	}
	return nil
}

// refreshGating unlocks every mission whose prerequisites are now met and
// returns the ids of missions that changed.
func (t *Tracker) refreshGating() []int {
	if !t.gateOpen {
		return nil
	}
	total := t.CompletedLevels()
	var unlocked []int
	for _, m := range t.missions {
		if m.unlocked {
			continue
		}
		if total-m.completed() < m.tmpl.RequiredLevels {
			continue
		}
		m.unlocked = true
		if len(m.levels) > 0 {
			m.levels[0], _ = m.levels[0].Unlock()
		}
		unlocked = append(unlocked, m.tmpl.ID)
	}
	return unlocked
}

// GateOpen reports whether the global gate has been passed.
func (t *Tracker) GateOpen() bool {
	return t.gateOpen
}

// OpenGate passes the global gate and returns the missions it unlocked.
func (t *Tracker) OpenGate() []int {
	if t.gateOpen {
		return nil
	}
	t.gateOpen = true
	return t.refreshGating()
}

// CanOpen reports whether a level may be opened: its mission must be
// unlocked and the level itself available.
func (t *Tracker) CanOpen(missionID, levelID int) bool {
	m := t.mission(missionID)
	if m == nil || !m.unlocked {
		return false
	}
	idx := m.levelIndex(levelID)
	return idx >= 0 && m.levels[idx] == domain.LevelAvailable
}

// Complete marks an available level completed, unlocks the next level in the
// same mission and re-evaluates cross-mission gating.
func (t *Tracker) Complete(missionID, levelID int) (Advance, bool) {
	m := t.mission(missionID)
	if m == nil || !m.unlocked {
		return Advance{}, false
	}
	idx := m.levelIndex(levelID)
	if idx < 0 {
		return Advance{}, false
	}
	next, changed := m.levels[idx].Complete()
	if !changed {
		return Advance{}, false
	}
	m.levels[idx] = next

	adv := Advance{
		MissionID: missionID,
		LevelID:   levelID,
		Points:    m.tmpl.Levels[idx].Points,
	}
	if idx+1 < len(m.levels) {
		if status, ok := m.levels[idx+1].Unlock(); ok {
			m.levels[idx+1] = status
			adv.NextLevelID = m.tmpl.Levels[idx+1].ID
		}
	}
	adv.MissionCompleted = m.completed() == len(m.levels)
	adv.UnlockedMissions = t.refreshGating()
	return adv, true
}

// LevelStatus returns the status of a single level.
func (t *Tracker) LevelStatus(missionID, levelID int) (domain.LevelStatus, bool) {
	m := t.mission(missionID)
	if m == nil {
		return "", false
	}
	idx := m.levelIndex(levelID)
	if idx < 0 {
		return "", false
	}
	return m.levels[idx], true
}

// Summary returns the aggregate status of a mission.
func (t *Tracker) Summary(missionID int) (domain.MissionSummary, bool) {
	m := t.mission(missionID)
	if m == nil {
		return domain.MissionSummary{}, false
	}
	completed := m.completed()
	return domain.MissionSummary{
		MissionID:       missionID,
		Status:          domain.DeriveMissionStatus(m.unlocked, completed, len(m.levels)),
		CompletedLevels: completed,
		TotalLevels:     len(m.levels),
	}, true
}

// Mission returns a mission with its live level statuses.
func (t *Tracker) Mission(missionID int) (domain.Mission, bool) {
	m := t.mission(missionID)
	if m == nil {
		return domain.Mission{}, false
	}
	return t.view(m), true
}

// Missions returns every mission in display order.
func (t *Tracker) Missions() []domain.Mission {
	out := make([]domain.Mission, 0, len(t.missions))
	for _, m := range t.missions {
		out = append(out, t.view(m))
	}
	return out
}

func (t *Tracker) view(m *missionState) domain.Mission {
	completed := m.completed()
	levels := make([]domain.Level, len(m.levels))
	for i, l := range m.tmpl.Levels {
		levels[i] = domain.Level{LevelTemplate: l, Status: m.levels[i]}
	}
	return domain.Mission{
		ID:             m.tmpl.ID,
		Title:          m.tmpl.Title,
		Description:    m.tmpl.Description,
		Category:       m.tmpl.Category,
		Difficulty:     m.tmpl.Difficulty,
		RequiredLevels: m.tmpl.RequiredLevels,
		Status:         domain.DeriveMissionStatus(m.unlocked, completed, len(m.levels)),
		Completed:      completed,
		Total:          len(m.levels),
		Levels:         levels,
	}
}

// CompletedLevels counts completed levels across all missions.
func (t *Tracker) CompletedLevels() int {
	n := 0
	for _, m := range t.missions {
		n += m.completed()
	}
	return n
}

// CompletedMissions counts missions with every level completed.
func (t *Tracker) CompletedMissions() int {
	n := 0
	for _, m := range t.missions {
		if len(m.levels) > 0 && m.completed() == len(m.levels) {
			n++
		}
	}
	return n
}

// Points sums the point values of completed levels.
func (t *Tracker) Points() int {
	n := 0
	for _, m := range t.missions {
		for i, s := range m.levels {
			if s == domain.LevelCompleted {
				n += m.tmpl.Levels[i].Points
			}
		}
	}
	return n
}
