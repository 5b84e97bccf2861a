package api

import (
	"encoding/json"
	"errors"
	"net/http"

	leagueservice "github.com/ladderleague/ladder-bot/app/modules/league/application"
	matchservice "github.com/ladderleague/ladder-bot/app/modules/match/application"
	playerservice "github.com/ladderleague/ladder-bot/app/modules/player/application"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the service sentinel errors onto HTTP status
// codes. Anything unmapped is a 500 with a generic body so storage
// details never leak to the Discord gateway.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchservice.ErrMatchNotFound),
		errors.Is(err, leagueservice.ErrLeagueNotFound),
		errors.Is(err, playerservice.ErrPlayerNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})

	case errors.Is(err, matchservice.ErrNotParticipant),
		errors.Is(err, matchservice.ErrNotLeagueMember),
		errors.Is(err, leagueservice.ErrNotLeagueMember):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})

	case errors.Is(err, matchservice.ErrInvalidState),
		errors.Is(err, matchservice.ErrNotConfirmed),
		errors.Is(err, matchservice.ErrDuplicateMatch),
		errors.Is(err, leagueservice.ErrLeagueExists),
		errors.Is(err, leagueservice.ErrAlreadyMember),
		errors.Is(err, leagueservice.ErrActiveMatchesRemain),
		errors.Is(err, playerservice.ErrAlreadyMember):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})

	case errors.Is(err, matchservice.ErrInvalidScore),
		errors.Is(err, matchservice.ErrSelfChallenge),
		errors.Is(err, matchservice.ErrPastScheduledDate):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})

	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
