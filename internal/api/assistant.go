package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ashureev/arctic-quest/internal/assistant"
	"github.com/ashureev/arctic-quest/internal/domain"
	"github.com/ashureev/arctic-quest/internal/game"
	"github.com/go-chi/chi/v5"
)

const maxQuestionLen = 500

// AssistantHandler serves the FAQ assistant.
type AssistantHandler struct {
	*Handler
}

// NewAssistantHandler creates an assistant handler.
func NewAssistantHandler(base *Handler) *AssistantHandler {
	return &AssistantHandler{Handler: base}
}

// RegisterRoutes registers assistant routes on r.
func (h *AssistantHandler) RegisterRoutes(r chi.Router) {
	r.Route("/assistant", func(r chi.Router) {
		r.Get("/questions", h.Questions)
		r.Post("/ask", h.Ask)
	})
}

type askRequest struct {
	Question string `json:"question"`
}

// Questions returns the greeting and the suggested questions.
func (h *AssistantHandler) Questions(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"greeting":  assistant.Greeting,
		"questions": assistant.QuickQuestions(),
	})
}

// Ask answers a question after the assistant's typing delay.
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req askRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" || len(req.Question) > maxQuestionLen {
		Error(w, http.StatusBadRequest, "question must be 1-500 characters")
		return
	}

	reply, err := h.assistant.Ask(r.Context(), req.Question, progressOf(s))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		Error(w, http.StatusInternalServerError, "assistant unavailable")
		return
	}
	JSON(w, http.StatusOK, reply)
}

func progressOf(s *game.Session) assistant.Progress {
	p := assistant.Progress{
		Balance: s.WalletBalance(),
		Points:  s.Points(),
	}
	for _, m := range s.Missions() {
		p.TotalMissions++
		p.TotalLevels += m.Total
		p.CompletedLevels += m.Completed
		switch m.Status {
		case domain.MissionCompleted:
			p.CompletedMissions++
		case domain.MissionAvailable, domain.MissionInProgress:
			if p.NextMission == "" {
				p.NextMission = m.Title
			}
		}
	}
	return p
}
