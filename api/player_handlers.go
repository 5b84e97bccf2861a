package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ladderleague/ladder-bot/app/shared"
)

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := shared.ParsePlayerID(chi.URLParam(r, "playerID"))
	if err != nil {
		badRequest(w, "invalid player id")
		return
	}

	player, err := s.players.GetPlayer(r.Context(), playerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleGetRatingHistory(w http.ResponseWriter, r *http.Request) {
	playerID, err := shared.ParsePlayerID(chi.URLParam(r, "playerID"))
	if err != nil {
		badRequest(w, "invalid player id")
		return
	}

	history, err := s.players.GetRatingHistory(r.Context(), playerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleGetRatingChart(w http.ResponseWriter, r *http.Request) {
	playerID, err := shared.ParsePlayerID(chi.URLParam(r, "playerID"))
	if err != nil {
		badRequest(w, "invalid player id")
		return
	}

	png, err := s.players.RenderRatingChart(r.Context(), playerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
