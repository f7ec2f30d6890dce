package api

import (
	"log/slog"
	"net/http"

	"github.com/ashureev/arctic-quest/internal/domain"
	"github.com/ashureev/arctic-quest/internal/game"
	"github.com/go-chi/chi/v5"
)

const recentActivityLimit = 20

// DashboardHandler serves the player dashboard.
type DashboardHandler struct {
	*Handler
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(base *Handler) *DashboardHandler {
	return &DashboardHandler{Handler: base}
}

// RegisterRoutes registers dashboard routes on r.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.GetDashboard)
}

type dashboardResponse struct {
	Balance       int                     `json:"balance"`
	Points        int                     `json:"points"`
	Missions      []domain.MissionSummary `json:"missions"`
	Stats         game.Stats              `json:"stats"`
	Achievements  []domain.Achievement    `json:"achievements"`
	Activity      []domain.Activity       `json:"activity"`
	LifetimeSolve int                     `json:"lifetime_riddles_solved"`
}

// GetDashboard aggregates balance, mission progress, achievements and the
// most recent journal entries.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	activity, err := h.repo.RecentActivities(ctx, s.UserID(), recentActivityLimit)
	if err != nil {
		slog.Error("Failed to load activity", "error", err, "user_id", s.UserID())
		Error(w, http.StatusInternalServerError, "failed to load activity")
		return
	}
	solved, err := h.repo.CountActivities(ctx, s.UserID(), domain.EventAnswerCorrect)
	if err != nil {
		slog.Error("Failed to count activity", "error", err, "user_id", s.UserID())
		Error(w, http.StatusInternalServerError, "failed to load activity")
		return
	}
	if activity == nil {
		activity = []domain.Activity{}
	}

	missions := s.Missions()
	summaries := make([]domain.MissionSummary, 0, len(missions))
	for _, m := range missions {
		summaries = append(summaries, domain.MissionSummary{
			MissionID:       m.ID,
			Status:          m.Status,
			CompletedLevels: m.Completed,
			TotalLevels:     m.Total,
		})
	}
	stats := s.Stats()

	JSON(w, http.StatusOK, dashboardResponse{
		Balance:       s.WalletBalance(),
		Points:        s.Points(),
		Missions:      summaries,
		Stats:         stats,
		Achievements:  game.Achievements(stats),
		Activity:      activity,
		LifetimeSolve: solved,
	})
}
