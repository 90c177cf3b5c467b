package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fatehq/fate-cli/internal/engine"
	"github.com/fatehq/fate-cli/internal/model"
)

// Response helpers

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zap.L().Error("server: encode error response", zap.Error(err))
	}
}

// Health

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"revision": s.cat.Revision(),
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// Tools

// toolView is a tool plus its display score under the card weight table,
// which is what the comparison grid renders.
type toolView struct {
	model.Tool
	DisplayScore int `json:"display_score"`
}

func (s *Server) toolViews(tools []model.Tool) []toolView {
	weights := engine.CardWeights()
	views := make([]toolView, 0, len(tools))
	for _, t := range tools {
		views = append(views, toolView{Tool: t, DisplayScore: engine.DisplayScore(t, weights)})
	}
	return views
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	tools := s.cat.Tools()

	if sortParam := r.URL.Query().Get("sort"); sortParam != "" {
		strategy, err := engine.ParseStrategy(sortParam)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_sort", err.Error())
			return
		}
		tools = engine.SortCatalog(tools, strategy)
	}

	respondJSON(w, http.StatusOK, s.toolViews(tools))
}

func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tool, ok := s.cat.Tool(id)
	if !ok {
		respondError(w, http.StatusNotFound, "tool_not_found", "no tool with id "+id)
		return
	}
	respondJSON(w, http.StatusOK, toolView{Tool: tool, DisplayScore: engine.DisplayScore(tool, engine.CardWeights())})
}

// Rankings

type rankingEntry struct {
	Rank         int     `json:"rank"`
	ToolID       string  `json:"tool_id"`
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	DisplayScore int     `json:"display_score"`
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	strategyParam := r.URL.Query().Get("strategy")
	if strategyParam == "" {
		strategyParam = string(engine.StrategyBalanced)
	}
	strategy, err := engine.ParseStrategy(strategyParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_strategy", err.Error())
		return
	}

	weights := engine.CardWeights()
	sorted := engine.SortCatalog(s.cat.Tools(), strategy)
	entries := make([]rankingEntry, 0, len(sorted))
	for i, t := range sorted {
		entries = append(entries, rankingEntry{
			Rank:         i + 1,
			ToolID:       t.ID,
			Name:         t.Name,
			Score:        engine.StrategyScore(t, strategy),
			DisplayScore: engine.DisplayScore(t, weights),
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"strategy": string(strategy),
		"revision": s.cat.Revision(),
		"entries":  entries,
	})
}

// Quiz

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.cat.Questions())
}

type quizScoreRequest struct {
	Answers model.Answers `json:"answers"`
}

type quizResultEntry struct {
	Rank         int     `json:"rank"`
	ToolID       string  `json:"tool_id"`
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	DisplayScore int     `json:"display_score"`
}

func (s *Server) handleQuizScore(w http.ResponseWriter, r *http.Request) {
	var req quizScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "request body must be JSON with an answers object")
		return
	}

	ranked := engine.ScoreQuiz(s.cat, req.Answers)
	mismatches := engine.FindMismatches(s.cat, req.Answers, ranked)

	weights := engine.CardWeights()
	results := make([]quizResultEntry, 0, len(ranked))
	for i, rt := range ranked {
		results = append(results, quizResultEntry{
			Rank:         i + 1,
			ToolID:       rt.Tool.ID,
			Name:         rt.Tool.Name,
			Score:        rt.Score,
			DisplayScore: engine.DisplayScore(rt.Tool, weights),
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"results":    results,
		"mismatches": mismatches,
	})
}

// Dimensions

func (s *Server) handleDimensions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.cat.Dimensions())
}
