package api

import (
	"log/slog"
	"net/http"

	"github.com/ashureev/arctic-quest/internal/domain"
	"github.com/ashureev/arctic-quest/internal/game"
	"github.com/ashureev/arctic-quest/internal/identity"
	"github.com/go-chi/chi/v5"
)

// GameHandler exposes a player's game session.
type GameHandler struct {
	*Handler
}

// NewGameHandler creates a game handler.
func NewGameHandler(base *Handler) *GameHandler {
	return &GameHandler{Handler: base}
}

// RegisterRoutes registers game routes on r, which is expected to be mounted at /api.
func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.GetMe)
	r.Get("/wallet", h.GetWallet)

	r.Get("/missions", h.ListMissions)
	r.Get("/missions/{missionID}", h.GetMissionStatus)
	r.Post("/missions/{missionID}/levels/{levelID}/open", h.OpenLevel)

	r.Post("/levels/{levelID}/hints/{hintIndex}", h.RevealHint)
	r.Post("/levels/{levelID}/answer", h.SubmitAnswer)
	r.Get("/levels/{levelID}/attempt", h.GetAttempt)
	r.Delete("/levels/{levelID}/attempt", h.CloseAttempt)

	r.Get("/gate", h.GetGate)
	r.Post("/gate/answer", h.SubmitGateAnswer)
}

type answerRequest struct {
	AnswerID *int `json:"answer_id"`
}

type advanceResponse struct {
	Points           int   `json:"points"`
	NextLevelID      int   `json:"next_level_id,omitempty"`
	MissionCompleted bool  `json:"mission_completed"`
	UnlockedMissions []int `json:"unlocked_missions,omitempty"`
}

type openResponse struct {
	Opened    bool                  `json:"opened"`
	MissionID int                   `json:"mission_id"`
	LevelID   int                   `json:"level_id"`
	Riddle    *domain.PublicRiddle  `json:"riddle,omitempty"`
	Attempt   *game.AttemptSnapshot `json:"attempt,omitempty"`
	Completed bool                  `json:"completed"`
	Advance   *advanceResponse      `json:"advance,omitempty"`
	Balance   int                   `json:"balance"`
}

type hintResponse struct {
	Revealed bool               `json:"revealed"`
	Hint     *game.RevealedHint `json:"hint,omitempty"`
	Balance  int                `json:"balance"`
}

type answerResponse struct {
	Outcome     domain.Outcome `json:"outcome"`
	EarnedCoins *int           `json:"earned_coins,omitempty"`
	BonusPoints *int           `json:"bonus_points,omitempty"`
	HintsSpent  int            `json:"hints_spent"`
	Explanation string         `json:"explanation,omitempty"`
	Balance     int            `json:"balance"`
}

func newAnswerResponse(res game.Resolution, balance int) answerResponse {
	resp := answerResponse{
		Outcome:     res.Outcome,
		HintsSpent:  res.HintsSpent,
		Explanation: res.Explanation,
		Balance:     balance,
	}
	if res.Outcome == domain.OutcomeCorrect {
		earned, bonus := res.EarnedCoins, res.BonusPoints
		resp.EarnedCoins = &earned
		resp.BonusPoints = &bonus
	}
	return resp
}

// GetMe returns the current player's profile and balance.
func (h *GameHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	player, err := h.repo.GetPlayer(r.Context(), s.UserID())
	if err != nil {
		slog.Error("Failed to load player", "error", err, "user_id", s.UserID())
		Error(w, http.StatusInternalServerError, "failed to load player")
		return
	}
	username := identity.Username(s.UserID())
	if player != nil {
		username = player.Username
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  s.UserID(),
		"username": username,
		"balance":  s.WalletBalance(),
		"points":   s.Points(),
	})
}

// GetWallet returns the coin balance.
func (h *GameHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, map[string]int{"balance": s.WalletBalance()})
}

// ListMissions returns every mission with level statuses.
func (h *GameHandler) ListMissions(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"missions": s.Missions()})
}

// GetMissionStatus returns a mission's aggregate status and its levels.
func (h *GameHandler) GetMissionStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	missionID, ok := pathInt(w, r, "missionID")
	if !ok {
		return
	}

	mission, found := s.Mission(missionID)
	if !found {
		Error(w, http.StatusNotFound, "mission not found")
		return
	}
	JSON(w, http.StatusOK, mission)
}

// OpenLevel presents a level's riddle.
func (h *GameHandler) OpenLevel(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	missionID, ok := pathInt(w, r, "missionID")
	if !ok {
		return
	}
	levelID, ok := pathInt(w, r, "levelID")
	if !ok {
		return
	}

	opening, opened := s.OpenLevel(missionID, levelID)
	resp := openResponse{
		Opened:    opened,
		MissionID: missionID,
		LevelID:   levelID,
		Riddle:    opening.Riddle,
		Attempt:   opening.Attempt,
		Completed: opening.Completed,
		Balance:   s.WalletBalance(),
	}
	if adv := opening.Advance; adv != nil {
		resp.Advance = &advanceResponse{
			Points:           adv.Points,
			NextLevelID:      adv.NextLevelID,
			MissionCompleted: adv.MissionCompleted,
			UnlockedMissions: adv.UnlockedMissions,
		}
	}
	JSON(w, http.StatusOK, resp)
}

// RevealHint buys a hint for the active attempt.
func (h *GameHandler) RevealHint(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	levelID, ok := pathInt(w, r, "levelID")
	if !ok {
		return
	}
	hintIndex, ok := pathInt(w, r, "hintIndex")
	if !ok {
		return
	}

	resp := hintResponse{Revealed: s.RevealHint(levelID, hintIndex)}
	if resp.Revealed {
		if snap, found := s.Attempt(levelID); found {
			for _, hint := range snap.RevealedHints {
				if hint.Index == hintIndex {
					resp.Hint = &hint
					break
				}
			}
		}
	}
	resp.Balance = s.WalletBalance()
	JSON(w, http.StatusOK, resp)
}

// SubmitAnswer evaluates an answer for the active attempt.
func (h *GameHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	levelID, ok := pathInt(w, r, "levelID")
	if !ok {
		return
	}
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.AnswerID == nil {
		Error(w, http.StatusBadRequest, "answer_id is required")
		return
	}

	res := s.SubmitAnswer(levelID, *req.AnswerID)
	JSON(w, http.StatusOK, newAnswerResponse(res, s.WalletBalance()))
}

// GetAttempt returns the active attempt on a level.
func (h *GameHandler) GetAttempt(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	levelID, ok := pathInt(w, r, "levelID")
	if !ok {
		return
	}

	snap, found := s.Attempt(levelID)
	if !found {
		Error(w, http.StatusNotFound, "no active attempt")
		return
	}
	JSON(w, http.StatusOK, snap)
}

// CloseAttempt tears down the view hosting a level.
func (h *GameHandler) CloseAttempt(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	levelID, ok := pathInt(w, r, "levelID")
	if !ok {
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"closed": s.CloseLevel(levelID)})
}

// GetGate returns the gate riddle and whether it has been solved.
func (h *GameHandler) GetGate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	riddle, state := s.GateRiddle()
	JSON(w, http.StatusOK, map[string]interface{}{
		"riddle":  riddle,
		"solved":  state.Solved,
		"pending": state.Pending,
	})
}

// SubmitGateAnswer evaluates an answer to the gate riddle.
func (h *GameHandler) SubmitGateAnswer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.AnswerID == nil {
		Error(w, http.StatusBadRequest, "answer_id is required")
		return
	}

	res := s.SubmitGateAnswer(*req.AnswerID)
	JSON(w, http.StatusOK, map[string]interface{}{
		"outcome":     res.Outcome,
		"explanation": res.Explanation,
	})
}
