package http

import (
	"encoding/json"
	"net/http"

	"trivia-game-service/internal/app"
	"trivia-game-service/internal/domain"
)

type HighScoreHandler struct {
	service *app.GameService
}

func NewHighScoreHandler(service *app.GameService) *HighScoreHandler {
	return &HighScoreHandler{service: service}
}

type highScoreResponse struct {
	Mode       domain.Mode       `json:"mode"`
	Difficulty domain.Difficulty `json:"difficulty"`
	domain.HighScore
}

// ServeHTTP answers GET /highscores?mode=&difficulty= with the stored record.
func (h *HighScoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	mode, err := domain.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	difficulty, err := domain.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hs, ok, err := h.service.HighScore(r.Context(), mode, difficulty)
	if err != nil {
		http.Error(w, "high score unavailable", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "no high score yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(highScoreResponse{Mode: mode, Difficulty: difficulty, HighScore: hs})
}
