package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ladderleague/ladder-bot/app/shared"
)

type createLeagueRequest struct {
	GuildID string `json:"guild_id"`
	Name    string `json:"name"`
}

func (s *Server) handleCreateLeague(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustCaller(w, r)
	if !ok {
		return
	}

	var req createLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.GuildID == "" || req.Name == "" {
		badRequest(w, "guild_id and name are required")
		return
	}

	league, err := s.leagues.CreateLeague(r.Context(), req.GuildID, req.Name, caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, league)
}

func (s *Server) handleListLeagues(w http.ResponseWriter, r *http.Request) {
	guildID := r.URL.Query().Get("guild_id")
	if guildID == "" {
		badRequest(w, "guild_id is required")
		return
	}

	leagues, err := s.leagues.ListLeagues(r.Context(), guildID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leagues)
}

func (s *Server) handleGetLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := shared.ParseLeagueID(chi.URLParam(r, "leagueID"))
	if err != nil {
		badRequest(w, "invalid league id")
		return
	}

	league, err := s.leagues.GetLeague(r.Context(), leagueID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, league)
}

func (s *Server) handleJoinLeague(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustCaller(w, r)
	if !ok {
		return
	}
	leagueID, err := shared.ParseLeagueID(chi.URLParam(r, "leagueID"))
	if err != nil {
		badRequest(w, "invalid league id")
		return
	}

	if err := s.leagues.JoinLeague(r.Context(), caller, leagueID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLeaveLeague(w http.ResponseWriter, r *http.Request) {
	caller, ok := mustCaller(w, r)
	if !ok {
		return
	}
	leagueID, err := shared.ParseLeagueID(chi.URLParam(r, "leagueID"))
	if err != nil {
		badRequest(w, "invalid league id")
		return
	}

	if err := s.leagues.LeaveLeague(r.Context(), caller, leagueID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetStandings(w http.ResponseWriter, r *http.Request) {
	leagueID, err := shared.ParseLeagueID(chi.URLParam(r, "leagueID"))
	if err != nil {
		badRequest(w, "invalid league id")
		return
	}

	standings, err := s.leagues.GetStandings(r.Context(), leagueID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

func (s *Server) handleExportStandings(w http.ResponseWriter, r *http.Request) {
	leagueID, err := shared.ParseLeagueID(chi.URLParam(r, "leagueID"))
	if err != nil {
		badRequest(w, "invalid league id")
		return
	}

	data, err := s.leagues.ExportStandings(r.Context(), leagueID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="standings.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
