package domain

// LevelTemplate is the static description of a level.
type LevelTemplate struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// MissionTemplate is the static description of a mission.
type MissionTemplate struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Difficulty  Difficulty      `json:"difficulty"`
	Levels      []LevelTemplate `json:"levels"`
	// RequiredLevels is the number of levels that must be completed in other
	// missions before this one unlocks. Zero means no prerequisite.
	RequiredLevels int `json:"required_levels,omitempty"`
}

// Level is a level with its current status.
type Level struct {
	LevelTemplate
	Status LevelStatus `json:"status"`
}

// MissionSummary answers getMissionStatus.
type MissionSummary struct {
	MissionID       int           `json:"mission_id"`
	Status          MissionStatus `json:"status"`
	CompletedLevels int           `json:"completed_levels"`
	TotalLevels     int           `json:"total_levels"`
}

// Mission is a mission with its live level statuses.
type Mission struct {
	ID             int           `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Category       string        `json:"category"`
	Difficulty     Difficulty    `json:"difficulty"`
	RequiredLevels int           `json:"required_levels,omitempty"`
	Status         MissionStatus `json:"status"`
	Completed      int           `json:"completed_levels"`
	Total          int           `json:"total_levels"`
	Levels         []Level       `json:"levels"`
}
