package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	matchtime "github.com/ladderleague/ladder-bot/app/modules/match/time_utils"
	"github.com/ladderleague/ladder-bot/app/shared"
)

type scheduleMatchRequest struct {
	LeagueID string        `json:"league_id"`
	Opponent shared.UserID `json:"opponent"`

	// ScheduledAt takes RFC3339; When/Timezone take natural language
	// ("tomorrow at 7pm", "EST"). At most one form may be set.
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	When        string     `json:"when,omitempty"`
	Timezone    string     `json:"timezone,omitempty"`
}

func (s *Server) handleScheduleMatch(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustCaller(w, r)
	if !ok {
		return
	}

	var req scheduleMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	leagueID, err := shared.ParseLeagueID(req.LeagueID)
	if err != nil {
		badRequest(w, "invalid league id")
		return
	}
	if req.Opponent == "" {
		badRequest(w, "opponent is required")
		return
	}

	scheduledAt := req.ScheduledAt
	if scheduledAt == nil && req.When != "" {
		parsed, err := s.timeParser.ParseUserTimeInput(req.When, req.Timezone, matchtime.RealClock{})
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		scheduledAt = &parsed
	}

	match, err := s.matches.ScheduleMatch(r.Context(), leagueID, caller, req.Opponent, scheduledAt)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, match)
}

func (s *Server) handleConfirmMatch(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustCaller(w, r)
	if !ok {
		return
	}
	matchID, err := shared.ParseMatchID(chi.URLParam(r, "matchID"))
	if err != nil {
		badRequest(w, "invalid match id")
		return
	}

	match, err := s.matches.ConfirmMatch(r.Context(), matchID, caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

type reportResultRequest struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

func (s *Server) handleReportResult(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustCaller(w, r)
	if !ok {
		return
	}
	matchID, err := shared.ParseMatchID(chi.URLParam(r, "matchID"))
	if err != nil {
		badRequest(w, "invalid match id")
		return
	}

	var req reportResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	summary, err := s.matches.ReportResult(r.Context(), matchID, caller, req.Score1, req.Score2)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCancelMatch(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustCaller(w, r)
	if !ok {
		return
	}
	matchID, err := shared.ParseMatchID(chi.URLParam(r, "matchID"))
	if err != nil {
		badRequest(w, "invalid match id")
		return
	}

	match, err := s.matches.CancelMatch(r.Context(), matchID, caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := shared.ParseMatchID(chi.URLParam(r, "matchID"))
	if err != nil {
		badRequest(w, "invalid match id")
		return
	}

	view, err := s.matches.GetMatch(r.Context(), matchID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleListMyMatches(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustCaller(w, r)
	if !ok {
		return
	}
	leagueID, err := shared.ParseLeagueID(r.URL.Query().Get("league_id"))
	if err != nil {
		badRequest(w, "invalid league id")
		return
	}

	var status *shared.MatchStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st := shared.MatchStatus(v)
		switch st {
		case shared.MatchStatusScheduled, shared.MatchStatusCompleted, shared.MatchStatusCancelled:
			status = &st
		default:
			badRequest(w, "invalid status")
			return
		}
	}

	matches, err := s.matches.ListPlayerMatches(r.Context(), caller, leagueID, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleListScheduledMatches(w http.ResponseWriter, r *http.Request) {
	leagueID, err := shared.ParseLeagueID(chi.URLParam(r, "leagueID"))
	if err != nil {
		badRequest(w, "invalid league id")
		return
	}

	matches, err := s.matches.ListScheduledMatches(r.Context(), leagueID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
